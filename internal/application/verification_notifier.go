package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-forum-auth/config"
	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	repo "github.com/oksasatya/go-forum-auth/internal/domain/repository"
	"github.com/oksasatya/go-forum-auth/internal/metrics"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
	"github.com/oksasatya/go-forum-auth/pkg/mailer"
	"github.com/oksasatya/go-forum-auth/pkg/mailer/templates"
)

// OriginPage names the page that asked for a verification code. It picks
// the wording of the mail.
type OriginPage string

const (
	OriginSignUp         OriginPage = "sign-up"
	OriginPasswordUpdate OriginPage = "password-update"
)

func (o OriginPage) template() (string, bool) {
	switch o {
	case OriginSignUp:
		return templates.SignUp, true
	case OriginPasswordUpdate:
		return templates.PasswordUpdate, true
	default:
		return "", false
	}
}

// Notifier issues a verification code to an email address.
type Notifier interface {
	Notify(ctx context.Context, email string, origin OriginPage) error
}

// VerificationNotifier stores a fresh code and mails it.
type VerificationNotifier struct {
	Codes   repo.VerificationCodeRepository
	Sender  mailer.Sender
	Config  *config.Config
	Logger  *logrus.Logger
	genCode func() (string, error)
}

func NewVerificationNotifier(codes repo.VerificationCodeRepository, sender mailer.Sender, cfg *config.Config, logger *logrus.Logger) *VerificationNotifier {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &VerificationNotifier{
		Codes:   codes,
		Sender:  sender,
		Config:  cfg,
		Logger:  logger,
		genCode: helpers.GenVerificationCode,
	}
}

// Notify overwrites any pending code for email, then sends it with wording
// chosen by origin. The send runs under its own timeout and survives
// cancellation of ctx. Every failure maps to ErrNotificationFailed.
func (n *VerificationNotifier) Notify(ctx context.Context, email string, origin OriginPage) (err error) {
	defer func() {
		metrics.NotificationsTotal.WithLabelValues(string(origin), metrics.Result(err)).Inc()
	}()

	code, err := n.genCode()
	if err != nil {
		return apperror.ErrNotificationFailed.Wrap(err)
	}
	if err := n.Codes.Save(ctx, email, code, n.Config.VerifyCodeTTL); err != nil {
		helpers.LogError(n.Logger, "store verification code failed", err, logrus.Fields{"email": email})
		return apperror.ErrNotificationFailed.Wrap(err)
	}

	name, ok := origin.template()
	if !ok {
		err := fmt.Errorf("unknown origin page %q", origin)
		helpers.LogError(n.Logger, "no mail template for origin", err, logrus.Fields{"email": email})
		return apperror.ErrNotificationFailed.Wrap(err)
	}

	data := templates.NewVerificationCodeData(n.Config, name, email, code,
		templates.WithExpiresIn(n.Config.VerifyCodeTTL),
		templates.WithTime(time.Now()),
	)
	subject, text, html, err := templates.Render(name, data)
	if err != nil {
		helpers.LogError(n.Logger, "render verification mail failed", err, logrus.Fields{"email": email, "template": name})
		return apperror.ErrNotificationFailed.Wrap(err)
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.sendTimeout())
	defer cancel()
	if err := n.Sender.Send(sendCtx, email, subject, text, html); err != nil {
		helpers.LogError(n.Logger, "send verification mail failed", err, logrus.Fields{"email": email, "origin": origin})
		return apperror.ErrNotificationFailed.Wrap(err)
	}

	n.Logger.WithFields(logrus.Fields{"email": email, "origin": origin}).Info("verification code sent")
	return nil
}

func (n *VerificationNotifier) sendTimeout() time.Duration {
	if n.Config.MailSendTimeout > 0 {
		return n.Config.MailSendTimeout
	}
	return 10 * time.Second
}

var _ Notifier = (*VerificationNotifier)(nil)
