package menu

import "context"

// Repository persists catalog entries.
type Repository interface {
	// Save inserts when m.ID() is zero, otherwise updates.
	Save(ctx context.Context, m *Menu) error

	// FindByID returns shared.ErrMenuNotFound when absent.
	FindByID(ctx context.Context, id uint) (*Menu, error)

	// FindByIDs returns the menus that exist, keyed by id.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Menu, error)

	// List applies q's filter, sort and paging and reports the unpaged total.
	List(ctx context.Context, q Query) ([]*Menu, int64, error)

	Delete(ctx context.Context, id uint) error
}
