package cart

import "context"

// Repository persists Cart aggregates together with their lines and the menus they
// reference. Inside a unit of work every Find locks the cart row until commit.
type Repository interface {
	// Save writes the cart row, upserts dirty lines and deletes removed ones. Inserting a
	// second open cart for a user fails with shared.ErrConflict.
	Save(ctx context.Context, c *Cart) error

	// FindOpenByUser returns the user's open cart or shared.ErrCartNotFound.
	FindOpenByUser(ctx context.Context, userID uint) (*Cart, error)

	// FindOpen returns cart id if it is open and owned by userID, else shared.ErrCartNotFound.
	FindOpen(ctx context.Context, cartID, userID uint) (*Cart, error)

	// FindByItemID returns the cart holding a line, or shared.ErrItemNotFound.
	FindByItemID(ctx context.Context, itemID uint) (*Cart, error)

	// FindOpenByMenu returns every open cart with a line for menuID.
	FindOpenByMenu(ctx context.Context, menuID uint) ([]*Cart, error)

	// ListOpenByUser is the read side used by the cart listing.
	ListOpenByUser(ctx context.Context, userID uint) ([]*Cart, error)
}
