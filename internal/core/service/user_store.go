package service

import (
	"context"
	"strings"
	"sync"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// UserStore is the in-memory ports.UserRepository. Username and email
// uniqueness are enforced case-insensitively; IDs follow the same
// sentinel/counter rule as the catalog.
type UserStore struct {
	mu     sync.Mutex
	users  []*domain.User
	nextID int64
}

// NewUserStore seeds the store and advances the ID counter past the
// largest seeded ID.
func NewUserStore(seed []*domain.User) *UserStore {
	s := &UserStore{nextID: 1}
	for _, u := range seed {
		clone := *u
		if clone.ID == 0 {
			clone.ID = s.nextID
			s.nextID++
		} else if clone.ID >= s.nextID {
			s.nextID = clone.ID + 1
		}
		s.users = append(s.users, &clone)
	}
	return s
}

func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}

	clone := *user
	if clone.ID == 0 {
		clone.ID = s.nextID
		s.nextID++
	} else if clone.ID >= s.nextID {
		s.nextID = clone.ID + 1
	}
	s.users = append(s.users, &clone)

	out := clone
	return &out, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) All(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.User, len(s.users))
	for i, u := range s.users {
		clone := *u
		out[i] = &clone
	}
	return out, nil
}
