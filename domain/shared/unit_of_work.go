package shared

import "context"

// UnitOfWork runs fn inside one transaction. Repositories pick the transaction up from
// the context passed to fn. A nil return commits, anything else rolls back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
