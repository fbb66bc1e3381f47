package postgres

import (
	"context"

	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	"github.com/oksasatya/go-forum-auth/internal/domain/repository"
)

type PointRepository struct {
	db DBTX
}

func NewPointRepository(db DBTX) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) Create(ctx context.Context, p *entity.Point) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO points (user_id, acc_point)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, p.AccountID, p.AccPoint)

	return mapError(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PointRepository) GetByAccountID(ctx context.Context, accountID int64) (*entity.Point, error) {
	p := &entity.Point{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, acc_point, created_at, updated_at
		FROM points
		WHERE user_id = $1 AND deleted_at IS NULL
	`, accountID).Scan(&p.ID, &p.AccountID, &p.AccPoint, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

var _ repository.PointRepository = (*PointRepository)(nil)
