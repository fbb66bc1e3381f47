package repository

import (
	"context"

	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
)

// PointRepository defines persistence of the per-account points head.
type PointRepository interface {
	Create(ctx context.Context, p *entity.Point) error
	GetByAccountID(ctx context.Context, accountID int64) (*entity.Point, error)
}
