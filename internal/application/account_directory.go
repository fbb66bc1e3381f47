package application

import (
	"context"

	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
)

// AccountDirectory is the searchable copy of public account fields.
// Writes to it are best-effort.
type AccountDirectory interface {
	Index(ctx context.Context, a *entity.Account) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}
