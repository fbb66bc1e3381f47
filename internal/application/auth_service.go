package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-forum-auth/internal/domain/repository"
	"github.com/oksasatya/go-forum-auth/internal/metrics"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

// AuthService runs sign-up, email verification, and login.
type AuthService struct {
	Accounts  repo.AccountRepository
	UoW       repo.UnitOfWork
	Codes     repo.VerificationCodeRepository
	Notifier  Notifier
	Hasher    *helpers.PasswordHasher
	JWT       *helpers.JWTManager
	Directory AccountDirectory // optional
	Logger    *logrus.Logger

	// SingleUseCodes deletes a code once it verified an account.
	SingleUseCodes bool
}

func NewAuthService(
	accounts repo.AccountRepository,
	uow repo.UnitOfWork,
	codes repo.VerificationCodeRepository,
	notifier Notifier,
	hasher *helpers.PasswordHasher,
	jwt *helpers.JWTManager,
	directory AccountDirectory,
	logger *logrus.Logger,
	singleUseCodes bool,
) *AuthService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AuthService{
		Accounts:       accounts,
		UoW:            uow,
		Codes:          codes,
		Notifier:       notifier,
		Hasher:         hasher,
		JWT:            jwt,
		Directory:      directory,
		Logger:         logger,
		SingleUseCodes: singleUseCodes,
	}
}

type RegisterInput struct {
	Email           string
	Nickname        string
	Password        string
	PasswordConfirm string
}

type RegisterResult struct {
	Email        string      `json:"email"`
	Nickname     string      `json:"nickname"`
	Role         entity.Role `json:"role"`
	PointBalance int         `json:"pointBalance"`
}

type VerifyResult struct {
	VerifiedEmail string `json:"verifiedEmail"`
}

type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"-"`
	AccountID   int64     `json:"-"`
}

// Register creates an unverified member and its points head in one
// transaction, then mails a verification code. When only the mail fails
// the committed result is returned together with ErrNotificationFailed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, origin OriginPage) (res *RegisterResult, err error) {
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()

	if in.Password != in.PasswordConfirm {
		return nil, apperror.ErrPasswordMismatch
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, apperror.ErrPasswordTooLong
	}

	if err := s.ensureFree(ctx, in.Email, in.Nickname); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.ErrPasswordTooLong
		}
		return nil, apperror.Internal(err)
	}

	account := entity.NewMember(in.Email, in.Nickname, hash)
	point := &entity.Point{}
	err = s.UoW.Do(ctx, func(ctx context.Context, repos repo.Repositories) error {
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return err
		}
		point.AccountID = account.ID
		return repos.Points.Create(ctx, point)
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// a soft-deleted row still owns the email or nickname
			s.Logger.WithError(err).WithField("email", in.Email).Warn("sign-up hit a unique constraint")
			return nil, apperror.ErrRestoreRequired.Wrap(err)
		}
		helpers.LogError(s.Logger, "create account failed", err, logrus.Fields{"email": in.Email})
		return nil, apperror.Internal(err)
	}

	res = &RegisterResult{
		Email:        account.Email,
		Nickname:     account.Nickname,
		Role:         account.Role,
		PointBalance: point.AccPoint,
	}
	helpers.LogInfo(s.Logger, "account registered", logrus.Fields{"account_id": account.ID, "email": account.Email})

	s.index(ctx, account)

	if err := s.Notifier.Notify(ctx, account.Email, origin); err != nil {
		return res, err
	}
	return res, nil
}

func (s *AuthService) ensureFree(ctx context.Context, email, nickname string) error {
	if _, err := s.Accounts.GetByEmail(ctx, email); err == nil {
		return apperror.ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return apperror.Internal(err)
	}
	if _, err := s.Accounts.GetByNickname(ctx, nickname); err == nil {
		return apperror.ErrNicknameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return apperror.Internal(err)
	}
	return nil
}

func (s *AuthService) index(ctx context.Context, a *entity.Account) {
	if s.Directory == nil {
		return
	}
	if err := s.Directory.Index(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("account directory index failed")
	}
}

// VerifyEmail checks code against the pending code for email and marks the
// account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email string, code int) (res *VerifyResult, err error) {
	defer func() {
		metrics.VerificationsTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()

	stored, ok, err := s.Codes.Get(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.ErrNoPendingVerify
	}
	want, err := strconv.Atoi(stored)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if want != code {
		return nil, apperror.ErrWrongCode
	}

	if err := s.Accounts.SetVerifiedByEmail(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.ErrAccountNotFound
		}
		return nil, apperror.Internal(err)
	}

	if s.SingleUseCodes {
		if err := s.Codes.Delete(ctx, email); err != nil {
			// the account is verified already; the code expires on its own
			s.Logger.WithError(err).WithField("email", email).Warn("delete verification code failed")
		}
	}

	helpers.LogInfo(s.Logger, "email verified", logrus.Fields{"email": email})
	return &VerifyResult{VerifiedEmail: email}, nil
}

// Login checks credentials of a verified account and signs an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (res *LoginResult, err error) {
	defer func() {
		metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()

	a, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.ErrAccountNotFound
		}
		return nil, apperror.Internal(err)
	}
	if !s.Hasher.Compare(a.Password, password) {
		return nil, apperror.ErrWrongCredentials
	}
	if !a.IsVerified {
		return nil, apperror.ErrEmailNotVerified
	}

	token, exp, err := s.JWT.GenerateAccessToken(a.ID, a.Email)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"account_id": a.ID})
		return nil, apperror.Internal(err)
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp, AccountID: a.ID}, nil
}
