package credentials

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Service manages accounts stored as salted bcrypt hashes keyed by username.
type Service interface {
	// Register inserts or replaces the entry for username. No duplicate
	// check is performed; re-registering an existing username rotates its
	// password.
	Register(ctx context.Context, username, password string) error
	// Verify reports whether username exists and password matches. Unknown
	// usernames and wrong passwords are indistinguishable to the caller.
	Verify(ctx context.Context, username, password string) (bool, error)
}

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithBcryptCost overrides the hashing cost (primarily to speed up tests).
func WithBcryptCost(cost int) ServiceOption {
	return func(s *service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

type service struct {
	store *Store
	cost  int

	// serialises the load-modify-save cycle; the file itself offers no
	// partial-update protection.
	mu sync.Mutex
}

// NewService constructs a credential service on top of the file store.
func NewService(store *Store, opts ...ServiceOption) (Service, error) {
	if store == nil {
		return nil, ErrPathRequired
	}

	s := &service{
		store: store,
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) Register(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("credentials: hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, err := s.store.Load()
	if err != nil {
		return err
	}
	mapping[username] = string(hash)
	return s.store.Save(mapping)
}

func (s *service) Verify(ctx context.Context, username, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	mapping, err := s.store.Load()
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	hash, ok := mapping[username]
	if !ok {
		return false, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
