package order

import "context"

// Repository Order repository interface
type Repository interface {
	// Save inserts the order and its items. Orders are never updated.
	Save(ctx context.Context, o *Order) error

	// ListByUser returns the user's orders newest first, with item menus loaded.
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
}
