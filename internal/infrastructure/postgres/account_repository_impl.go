package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	"github.com/oksasatya/go-forum-auth/internal/domain/repository"
)

const accountColumns = `id, email, nickname, password, role, verified_email, social_id, social_type, created_at, updated_at, deleted_at`

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, nickname, password, role, verified_email, social_id, social_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Nickname, a.Password, string(a.Role), a.IsVerified, a.SocialID, string(a.SocialType))

	return mapError(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
}

func (r *AccountRepository) GetByNickname(ctx context.Context, nickname string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM users WHERE nickname = $1 AND deleted_at IS NULL`, nickname)
}

// SetVerifiedByEmail flips the verified flag. Setting it on an already
// verified account is a no-op success.
func (r *AccountRepository) SetVerifiedByEmail(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET verified_email = TRUE, updated_at = $1
		WHERE email = $2 AND deleted_at IS NULL
	`, time.Now().UTC(), email)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var (
		a          entity.Account
		role       string
		socialType string
		socialID   sql.NullString
		deletedAt  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.Nickname, &a.Password, &role, &a.IsVerified,
		&socialID, &socialType, &a.CreatedAt, &a.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	a.Role = entity.Role(role)
	a.SocialType = entity.SocialType(socialType)
	if socialID.Valid {
		a.SocialID = &socialID.String
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return &a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
