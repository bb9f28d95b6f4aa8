package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("sessions: session not found")
	ErrTokenMissing = errors.New("sessions: token is required")
)

// NotFoundError captures a lookup miss for a session token.
type NotFoundError struct {
	Token string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Token == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: token=%s", ErrNotFound.Error(), e.Token)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Store persists sessions keyed by an opaque token. The token is the only
// value that ever reaches the client.
type Store interface {
	Issue(ctx context.Context) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, token string) error
}

// MemoryStoreOption configures the in-memory store.
type MemoryStoreOption func(*memoryStore)

// WithTTL bounds session lifetime; zero disables expiry.
func WithTTL(ttl time.Duration) MemoryStoreOption {
	return func(m *memoryStore) {
		m.ttl = ttl
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) MemoryStoreOption {
	return func(m *memoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

// WithTokenGenerator overrides how opaque tokens are minted.
func WithTokenGenerator(generator func() string) MemoryStoreOption {
	return func(m *memoryStore) {
		if generator != nil {
			m.token = generator
		}
	}
}

type memoryStore struct {
	mu      sync.RWMutex
	byToken map[string]*Session
	ttl     time.Duration
	now     func() time.Time
	token   func() string
}

// NewMemoryStore constructs an in-memory session store keyed by opaque
// tokens. It backs both tests and single-process deployments; the cookie
// layer only ever sees the token.
func NewMemoryStore(opts ...MemoryStoreOption) Store {
	m := &memoryStore{
		byToken: make(map[string]*Session),
		now:     time.Now,
		token:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *memoryStore) Issue(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := &Session{Token: m.token()}
	if m.ttl > 0 {
		session.ExpiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.byToken[session.Token] = session.clone()
	m.mu.Unlock()

	return session, nil
}

func (m *memoryStore) Get(ctx context.Context, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrTokenMissing
	}

	m.mu.RLock()
	record, ok := m.byToken[token]
	m.mu.RUnlock()

	if !ok || m.expired(record) {
		return nil, &NotFoundError{Token: token}
	}
	return record.clone(), nil
}

func (m *memoryStore) Save(ctx context.Context, session *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil || session.Token == "" {
		return ErrTokenMissing
	}

	if m.ttl > 0 {
		session.ExpiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.byToken[session.Token] = session.clone()
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return ErrTokenMissing
	}

	m.mu.Lock()
	delete(m.byToken, token)
	m.mu.Unlock()
	return nil
}

// PruneExpired drops sessions past their expiry and reports how many were
// removed. The web server runs this from a janitor goroutine.
func (m *memoryStore) PruneExpired() int {
	if m.ttl <= 0 {
		return 0
	}

	now := m.now()
	removed := 0

	m.mu.Lock()
	for token, record := range m.byToken {
		if !record.ExpiresAt.IsZero() && record.ExpiresAt.Before(now) {
			delete(m.byToken, token)
			removed++
		}
	}
	m.mu.Unlock()
	return removed
}

func (m *memoryStore) expired(record *Session) bool {
	return record != nil && !record.ExpiresAt.IsZero() && record.ExpiresAt.Before(m.now())
}

// Pruner is implemented by stores that can evict expired sessions.
type Pruner interface {
	PruneExpired() int
}
