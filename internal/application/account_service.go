package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-forum-auth/internal/domain/repository"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// AccountService serves read-side account views.
type AccountService struct {
	Accounts  repo.AccountRepository
	Points    repo.PointRepository
	Directory AccountDirectory // optional
	Logger    *logrus.Logger
}

func NewAccountService(accounts repo.AccountRepository, points repo.PointRepository, directory AccountDirectory, logger *logrus.Logger) *AccountService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AccountService{Accounts: accounts, Points: points, Directory: directory, Logger: logger}
}

type Profile struct {
	ID           int64       `json:"userId"`
	Email        string      `json:"email"`
	Nickname     string      `json:"nickname"`
	Role         entity.Role `json:"role"`
	Verified     bool        `json:"verified"`
	PointBalance int         `json:"pointBalance"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (s *AccountService) GetProfile(ctx context.Context, accountID int64) (*Profile, error) {
	a, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.ErrAccountNotFound
		}
		return nil, apperror.Internal(err)
	}
	p, err := s.Points.GetByAccountID(ctx, a.ID)
	if err != nil {
		helpers.LogError(s.Logger, "load points head failed", err, logrus.Fields{"account_id": a.ID})
		return nil, apperror.Internal(err)
	}
	return &Profile{
		ID:           a.ID,
		Email:        a.Email,
		Nickname:     a.Nickname,
		Role:         a.Role,
		Verified:     a.IsVerified,
		PointBalance: p.AccPoint,
		CreatedAt:    a.CreatedAt,
	}, nil
}

// Search looks accounts up by nickname or email. It returns an empty list
// when no directory is configured.
func (s *AccountService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Directory == nil {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	hits, err := s.Directory.Search(ctx, q, size)
	if err != nil {
		s.Logger.WithError(err).WithField("q", q).Warn("account search failed")
		return nil, apperror.Internal(err)
	}
	return hits, nil
}
