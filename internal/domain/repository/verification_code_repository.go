package repository

import (
	"context"
	"time"
)

// VerificationCodeRepository stores short-lived verification codes keyed by
// email. Save overwrites any live code and restarts its expiry.
type VerificationCodeRepository interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns ok=false when no live code exists.
	Get(ctx context.Context, email string) (code string, ok bool, err error)
	Delete(ctx context.Context, email string) error
}
