package repository

import "context"

// Repositories groups the repositories bound to one transaction.
type Repositories struct {
	Accounts AccountRepository
	Points   PointRepository
}

// UnitOfWork runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
