package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no active row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// AccountRepository defines account persistence. Lookups only see
// accounts that are not soft-deleted.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByNickname(ctx context.Context, nickname string) (*entity.Account, error)
	SetVerifiedByEmail(ctx context.Context, email string) error
}
