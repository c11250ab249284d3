/*
Package menu is the catalog application service: cached paged listing for
everyone, and admin mutations that flush the cache after commit.
*/
package menu

import (
	"context"
	"encoding/json"
	"time"

	"foodorder/domain/cart"
	"foodorder/domain/menu"
	"foodorder/domain/shared"
	"foodorder/pkg/cache"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
)

type ApplicationService struct {
	menuRepo menu.Repository
	cartRepo cart.Repository
	uow      shared.UnitOfWork
	cache    cache.Cache
	ttl      time.Duration
}

func NewApplicationService(
	menuRepo menu.Repository,
	cartRepo cart.Repository,
	uow shared.UnitOfWork,
	c cache.Cache,
	ttl time.Duration,
) *ApplicationService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &ApplicationService{menuRepo: menuRepo, cartRepo: cartRepo, uow: uow, cache: c, ttl: ttl}
}

// List returns the JSON-encoded PageResponse for raw, from cache when possible.
func (s *ApplicationService) List(ctx context.Context, raw menu.RawQuery) (json.RawMessage, error) {
	q, err := menu.ParseQuery(raw)
	if err != nil {
		return nil, err
	}

	key := cache.Key("menus", "getMenus", q.Signature())
	data, _, err := cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) (interface{}, error) {
		menus, total, err := s.menuRepo.List(ctx, q)
		if err != nil {
			return nil, err
		}
		return toPageResponse(menu.NewPage(menus, q, total)), nil
	})
	return data, err
}

func (s *ApplicationService) Get(ctx context.Context, id uint) (*MenuResponse, error) {
	m, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMenuResponse(m), nil
}

func (s *ApplicationService) Create(ctx context.Context, req CreateMenuRequest) (*MenuResponse, error) {
	m, err := menu.NewMenu(req.Name, req.Price, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.menuRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	cache.InvalidateAll(ctx, s.cache)
	logger.Info("Menu created", zap.Uint("menu_id", m.ID()), zap.String("name", m.Name()))
	return ToMenuResponse(m), nil
}

// Update edits a menu and reprices every open cart that holds it.
func (s *ApplicationService) Update(ctx context.Context, id uint, req UpdateMenuRequest) (*MenuResponse, error) {
	var updated *menu.Menu
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.menuRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := m.Update(req.Name, req.Price, req.ImageURL); err != nil {
			return err
		}
		if err := s.menuRepo.Save(ctx, m); err != nil {
			return err
		}

		carts, err := s.cartRepo.FindOpenByMenu(ctx, id)
		if err != nil {
			return err
		}
		for _, c := range carts {
			drifted, err := c.Reconcile()
			if err != nil {
				return err
			}
			if !drifted {
				continue
			}
			if err := s.cartRepo.Save(ctx, c); err != nil {
				return err
			}
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateAll(ctx, s.cache)
	return ToMenuResponse(updated), nil
}

// Delete removes a menu and drops it from every open cart.
func (s *ApplicationService) Delete(ctx context.Context, id uint) (*MenuResponse, error) {
	var removed *menu.Menu
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.menuRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		carts, err := s.cartRepo.FindOpenByMenu(ctx, id)
		if err != nil {
			return err
		}
		for _, c := range carts {
			if !c.RemoveMenu(id) {
				continue
			}
			if err := s.cartRepo.Save(ctx, c); err != nil {
				return err
			}
		}

		if err := s.menuRepo.Delete(ctx, id); err != nil {
			return err
		}
		removed = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateAll(ctx, s.cache)
	logger.Info("Menu removed", zap.Uint("menu_id", id))
	return ToMenuResponse(removed), nil
}
