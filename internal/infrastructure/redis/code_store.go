package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-forum-auth/internal/domain/repository"
)

// CodeStore keeps verification codes under verified:<email>.
type CodeStore struct {
	client *redis.Client
}

func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

// KeyVerification is the Redis key holding the pending code for email.
func KeyVerification(email string) string {
	return "verified:" + email
}

// Save writes the code with a hard expiry. SET overwrites any live code and
// restarts the window.
func (s *CodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, KeyVerification(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	return nil
}

func (s *CodeStore) Get(ctx context.Context, email string) (string, bool, error) {
	code, err := s.client.Get(ctx, KeyVerification(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get verification code: %w", err)
	}
	return code, true, nil
}

func (s *CodeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, KeyVerification(email)).Err(); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}

var _ repository.VerificationCodeRepository = (*CodeStore)(nil)
