/*
Package cart orchestrates the customer's open cart. Every mutation runs in one
transaction and invalidates the customer's cached cart listing after commit.
*/
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodorder/domain/cart"
	"foodorder/domain/menu"
	"foodorder/domain/shared"
	"foodorder/pkg/cache"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
)

// ListKey is the cache key of a customer's open-cart listing.
func ListKey(userID uint) string {
	return cache.UserKey("carts", "getCarts", userID)
}

type ApplicationService struct {
	cartRepo cart.Repository
	menuRepo menu.Repository
	uow      shared.UnitOfWork
	cache    cache.Cache
	ttl      time.Duration
}

func NewApplicationService(
	cartRepo cart.Repository,
	menuRepo menu.Repository,
	uow shared.UnitOfWork,
	c cache.Cache,
	ttl time.Duration,
) *ApplicationService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &ApplicationService{cartRepo: cartRepo, menuRepo: menuRepo, uow: uow, cache: c, ttl: ttl}
}

// AddItem puts quantity of a menu into the customer's open cart, opening one if needed.
func (s *ApplicationService) AddItem(ctx context.Context, userID uint, req AddItemRequest) (*AddItemResult, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewValidationError("cart", "quantity", "Quantity must be a positive integer!")
	}

	var result *AddItemResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.menuRepo.FindByID(ctx, req.MenuID)
		if err != nil {
			return err
		}

		c, err := s.cartRepo.FindOpenByUser(ctx, userID)
		if errors.Is(err, shared.ErrCartNotFound) {
			c = cart.New(userID)
		} else if err != nil {
			return err
		}

		item, err := c.AddItem(m, req.Quantity)
		if err != nil {
			return err
		}
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}

		result = &AddItemResult{
			CustomerCart: toCartResponse(c),
			CartItem:     toCartItemResponse(item),
			MenuName:     m.Name(),
			Quantity:     req.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, ListKey(userID))
	logger.Debug("Cart item added",
		zap.Uint("user_id", userID),
		zap.Uint("cart_id", result.CustomerCart.ID),
		zap.Uint("menu_id", req.MenuID),
	)
	return result, nil
}

// UpdateItem sets a line's quantity. Zero removes the line; the same quantity is a no-op
// that neither writes nor invalidates.
func (s *ApplicationService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*UpdateItemResult, error) {
	if quantity < 0 {
		return nil, shared.NewValidationError("cart", "quantity", "Quantity must be zero or a positive integer!")
	}

	var result *UpdateItemResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.ownedCart(ctx, userID, itemID)
		if err != nil {
			return err
		}

		change, err := c.ChangeQuantity(itemID, quantity)
		if err != nil {
			return err
		}

		result = &UpdateItemResult{MenuName: change.Item.Menu().Name(), Quantity: quantity}
		switch {
		case change.Unchanged():
			result.Outcome = Unchanged
		case change.Removed:
			result.Outcome = Removed
		default:
			result.Outcome = Modified
		}
		if result.Outcome != Unchanged {
			if err := s.cartRepo.Save(ctx, c); err != nil {
				return err
			}
		}
		result.Cart = toCartResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome != Unchanged {
		cache.Invalidate(ctx, s.cache, ListKey(userID))
	}
	return result, nil
}

// DeleteItem removes a line and returns the removed menu's name.
func (s *ApplicationService) DeleteItem(ctx context.Context, userID, itemID uint) (string, error) {
	var name string
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.ownedCart(ctx, userID, itemID)
		if err != nil {
			return err
		}
		removed, err := c.RemoveItem(itemID)
		if err != nil {
			return err
		}
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}
		name = removed.Menu().Name()
		return nil
	})
	if err != nil {
		return "", err
	}

	cache.Invalidate(ctx, s.cache, ListKey(userID))
	return name, nil
}

// List returns the JSON-encoded []CartResponse of the customer's open carts.
func (s *ApplicationService) List(ctx context.Context, userID uint) (json.RawMessage, error) {
	data, _, err := cache.Remember(ctx, s.cache, ListKey(userID), s.ttl, func(ctx context.Context) (interface{}, error) {
		carts, err := s.cartRepo.ListOpenByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp := make([]CartResponse, len(carts))
		for i, c := range carts {
			resp[i] = toCartResponse(c)
		}
		return resp, nil
	})
	return data, err
}

// ownedCart loads the open cart holding itemID. Another customer's line reads as a
// missing cart.
func (s *ApplicationService) ownedCart(ctx context.Context, userID, itemID uint) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(userID) {
		return nil, shared.NewError(shared.KindCartNotFound, "cart", "")
	}
	return c, nil
}
