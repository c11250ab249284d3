/*
Package order Application Layer - checkout and order history

Checkout turns an open cart into an order and pays for it from the customer's
balance in a single unit of work: either the order exists, the balance is debited
and the cart is closed, or nothing changed.
*/
package order

import (
	"context"
	"encoding/json"
	"time"

	appcart "foodorder/application/cart"
	"foodorder/domain/cart"
	"foodorder/domain/order"
	"foodorder/domain/shared"
	"foodorder/domain/user"
	"foodorder/pkg/cache"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
)

// ListKey is the cache key of a customer's order history.
func ListKey(userID uint) string {
	return cache.UserKey("orders", "getOrders", userID)
}

// ApplicationService Order application service
type ApplicationService struct {
	orderRepo   order.Repository
	cartRepo    cart.Repository
	profileRepo user.ProfileRepository
	uow         shared.UnitOfWork
	cache       cache.Cache
	ttl         time.Duration
}

// NewApplicationService Create order application service
func NewApplicationService(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	profileRepo user.ProfileRepository,
	uow shared.UnitOfWork,
	c cache.Cache,
	ttl time.Duration,
) *ApplicationService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &ApplicationService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		profileRepo: profileRepo,
		uow:         uow,
		cache:       c,
		ttl:         ttl,
	}
}

// Checkout Check out the customer's open cart
//
// The balance is checked after the order rows are written; a short balance rolls
// the whole transaction back.
func (s *ApplicationService) Checkout(ctx context.Context, userID, cartID uint) (*OrderResponse, error) {
	var placed *order.Order
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.cartRepo.FindOpen(ctx, cartID, userID)
		if err != nil {
			return err
		}
		if _, err := c.Reconcile(); err != nil {
			return err
		}

		items := c.Items()
		lines := make([]order.Line, len(items))
		for i, it := range items {
			lines[i] = order.Line{MenuID: it.MenuID(), Quantity: it.Quantity()}
		}
		o, err := order.New(userID, c.TotalPrice(), lines)
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		p, err := s.profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := p.Debit(c.TotalPrice()); err != nil {
			return err
		}
		if err := s.profileRepo.Save(ctx, p); err != nil {
			return err
		}

		if err := c.CheckOut(); err != nil {
			return err
		}
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, ListKey(userID), appcart.ListKey(userID))
	logger.Info("Cart checked out",
		zap.Uint("user_id", userID),
		zap.Uint("cart_id", cartID),
		zap.Uint("order_id", placed.ID()),
		zap.Int64("total_price", placed.TotalPrice()),
	)
	resp := toOrderResponse(placed)
	return &resp, nil
}

// List returns the JSON-encoded []OrderResponse of the customer, newest first.
func (s *ApplicationService) List(ctx context.Context, userID uint) (json.RawMessage, error) {
	data, _, err := cache.Remember(ctx, s.cache, ListKey(userID), s.ttl, func(ctx context.Context) (interface{}, error) {
		orders, err := s.orderRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp := make([]OrderResponse, len(orders))
		for i, o := range orders {
			resp[i] = toOrderResponse(o)
		}
		return resp, nil
	})
	return data, err
}
