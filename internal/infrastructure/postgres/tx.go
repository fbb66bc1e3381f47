package postgres

import (
	"context"
	"database/sql"

	"github.com/oksasatya/go-forum-auth/internal/domain/repository"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with it, and commits on success or
// rolls back on error or panic. Panics are rethrown after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = mapError(tx.Commit())
	}()

	err = fn(ctx, tx)
	return err
}

// TxManager implements repository.UnitOfWork on top of WithTx.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return WithTx(ctx, m.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, repository.Repositories{
			Accounts: NewAccountRepository(tx),
			Points:   NewPointRepository(tx),
		})
	})
}

var _ repository.UnitOfWork = (*TxManager)(nil)
