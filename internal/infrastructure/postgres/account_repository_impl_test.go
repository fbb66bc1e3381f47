package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	"github.com/oksasatya/go-forum-auth/internal/domain/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var accountRowColumns = []string{"id", "email", "nickname", "password", "role", "verified_email", "social_id", "social_type", "created_at", "updated_at", "deleted_at"}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users\s*\(email,\s*nickname,\s*password,\s*role,\s*verified_email,\s*social_id,\s*social_type\).*RETURNING\s+id,\s*created_at,\s*updated_at`).
		WithArgs("a@x.com", "az", "hash", "member", false, sqlmock.AnyArg(), "native").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	a := entity.NewMember("a@x.com", "az", "hash")
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, now, a.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), entity.NewMember("a@x.com", "az", "hash"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
	assert.Contains(t, err.Error(), "users_email_key")
}

func TestAccountRepository_Create_OtherError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), entity.NewMember("a@x.com", "az", "hash"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrDuplicate))
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestAccountRepository_GetByEmail_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*email.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow(int64(3), "a@x.com", "az", "hash", "member", true, nil, "native", now, now, nil))

	a, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, entity.RoleMember, a.Role)
	assert.Equal(t, entity.SocialNative, a.SocialType)
	assert.True(t, a.IsVerified)
	assert.Nil(t, a.SocialID)
	assert.False(t, a.IsDeleted())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByNickname_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+nickname\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByNickname(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepository_GetByID_SocialFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow(int64(9), "k@x.com", "kk", "hash", "admin", false, "kakao-123", "kakao", now, now, nil))

	a, err := repo.GetByID(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, a.SocialID)
	assert.Equal(t, "kakao-123", *a.SocialID)
	assert.Equal(t, entity.SocialKakao, a.SocialType)
	assert.Equal(t, entity.RoleAdmin, a.Role)
}

func TestAccountRepository_SetVerifiedByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+verified_email\s*=\s*TRUE.*WHERE\s+email\s*=\s*\$2\s+AND\s+deleted_at\s+IS\s+NULL`).
		WithArgs(sqlmock.AnyArg(), "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetVerifiedByEmail(context.Background(), "a@x.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_SetVerifiedByEmail_NoRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`UPDATE\s+users`).
		WithArgs(sqlmock.AnyArg(), "gone@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetVerifiedByEmail(context.Background(), "gone@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
