package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-forum-auth/config"
	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-forum-auth/internal/domain/repository"
	redisstore "github.com/oksasatya/go-forum-auth/internal/infrastructure/redis"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

// memStore is an in-memory users+points store. Unique constraints cover
// soft-deleted rows like the real tables do. Transactions are serialized
// and roll back by restoring a snapshot.
type memStore struct {
	mu       sync.Mutex
	accounts map[int64]*entity.Account
	points   map[int64]*entity.Point
	nextID   int64

	failPoints error // injected failure for points Create
	failLookup error // injected failure for account lookups
	txCount    int
}

func newMemStore() *memStore {
	return &memStore{accounts: map[int64]*entity.Account{}, points: map[int64]*entity.Point{}}
}

func (s *memStore) snapshot() (map[int64]*entity.Account, map[int64]*entity.Point, int64) {
	accs := make(map[int64]*entity.Account, len(s.accounts))
	for k, v := range s.accounts {
		c := *v
		accs[k] = &c
	}
	pts := make(map[int64]*entity.Point, len(s.points))
	for k, v := range s.points {
		c := *v
		pts[k] = &c
	}
	return accs, pts, s.nextID
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context, repos repo.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++
	accs, pts, next := s.snapshot()
	err := fn(ctx, repo.Repositories{
		Accounts: &memAccounts{s: s, inTx: true},
		Points:   &memPoints{s: s, inTx: true},
	})
	if err != nil {
		s.accounts, s.points, s.nextID = accs, pts, next
	}
	return err
}

func (s *memStore) accountRepo() *memAccounts { return &memAccounts{s: s} }
func (s *memStore) pointRepo() *memPoints     { return &memPoints{s: s} }

func (s *memStore) countAccounts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

func (s *memStore) countPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// seed inserts an account with its points head outside any transaction.
func (s *memStore) seed(a *entity.Account, balance int) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = time.Now().UTC()
	s.accounts[a.ID] = a
	s.points[a.ID] = &entity.Point{ID: a.ID, AccountID: a.ID, AccPoint: balance}
	return a
}

type memAccounts struct {
	s    *memStore
	inTx bool
}

func (r *memAccounts) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memAccounts) Create(_ context.Context, a *entity.Account) error {
	defer r.lock()()
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return errors.Join(repo.ErrDuplicate, errors.New("users_email_key"))
		}
		if existing.Nickname == a.Nickname {
			return errors.Join(repo.ErrDuplicate, errors.New("users_nickname_key"))
		}
	}
	r.s.nextID++
	a.ID = r.s.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	c := *a
	r.s.accounts[a.ID] = &c
	return nil
}

func (r *memAccounts) find(match func(*entity.Account) bool) (*entity.Account, error) {
	if r.s.failLookup != nil {
		return nil, r.s.failLookup
	}
	for _, a := range r.s.accounts {
		if !a.IsDeleted() && match(a) {
			c := *a
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memAccounts) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	defer r.lock()()
	return r.find(func(a *entity.Account) bool { return a.ID == id })
}

func (r *memAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	defer r.lock()()
	return r.find(func(a *entity.Account) bool { return a.Email == email })
}

func (r *memAccounts) GetByNickname(_ context.Context, nickname string) (*entity.Account, error) {
	defer r.lock()()
	return r.find(func(a *entity.Account) bool { return a.Nickname == nickname })
}

func (r *memAccounts) SetVerifiedByEmail(_ context.Context, email string) error {
	defer r.lock()()
	for _, a := range r.s.accounts {
		if !a.IsDeleted() && a.Email == email {
			a.IsVerified = true
			return nil
		}
	}
	return repo.ErrNotFound
}

type memPoints struct {
	s    *memStore
	inTx bool
}

func (r *memPoints) Create(_ context.Context, p *entity.Point) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if r.s.failPoints != nil {
		return r.s.failPoints
	}
	if _, ok := r.s.points[p.AccountID]; ok {
		return errors.Join(repo.ErrDuplicate, errors.New("points_user_id_key"))
	}
	p.ID = p.AccountID
	c := *p
	r.s.points[p.AccountID] = &c
	return nil
}

func (r *memPoints) GetByAccountID(_ context.Context, accountID int64) (*entity.Point, error) {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	p, ok := r.s.points[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *p
	return &c, nil
}

// sentMail is one message captured by fakeSender.
type sentMail struct {
	To, Subject, Text, HTML string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, text, html string) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("send without deadline")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

func (f *fakeSender) messages() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type fakeDirectory struct {
	mu      sync.Mutex
	indexed []*entity.Account
	hits    []map[string]any
	err     error
}

func (d *fakeDirectory) Index(_ context.Context, a *entity.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.indexed = append(d.indexed, a)
	return nil
}

func (d *fakeDirectory) Search(_ context.Context, q string, size int) ([]map[string]any, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := make([]map[string]any, 0, size)
	for _, h := range d.hits {
		if len(out) == size {
			break
		}
		if nick, _ := h["nickname"].(string); strings.Contains(nick, q) {
			out = append(out, h)
		}
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:             "forum",
		VerifyCodeTTL:       300 * time.Second,
		VerifyCodeSingleUse: true,
		MailSendTimeout:     time.Second,
	}
}

type authFixture struct {
	store     *memStore
	mr        *miniredis.Miniredis
	codes     *redisstore.CodeStore
	sender    *fakeSender
	directory *fakeDirectory
	notifier  *VerificationNotifier
	svc       *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	store := newMemStore()
	codes := redisstore.NewCodeStore(client)
	sender := &fakeSender{}
	directory := &fakeDirectory{}
	notifier := NewVerificationNotifier(codes, sender, cfg, nil)
	svc := NewAuthService(
		store.accountRepo(),
		store,
		codes,
		notifier,
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewJWTManager("test-secret", time.Hour, "forum-test"),
		directory,
		nil,
		cfg.VerifyCodeSingleUse,
	)
	return &authFixture{store: store, mr: mr, codes: codes, sender: sender, directory: directory, notifier: notifier, svc: svc}
}

// pendingCode reads the live code for email straight from Redis.
func (f *authFixture) pendingCode(t *testing.T, email string) string {
	t.Helper()
	code, err := f.mr.Get(redisstore.KeyVerification(email))
	require.NoError(t, err)
	return code
}
