package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// SessionRegistry is the in-memory ports.SessionRegistry: a token→user map
// behind a mutex. Sessions carry no expiry and die with the process.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*domain.User
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*domain.User)}
}

// Login mints a fresh uuid token and stores the mapping.
func (r *SessionRegistry) Login(_ context.Context, user *domain.User) (string, error) {
	token := uuid.NewString()
	clone := *user

	r.mu.Lock()
	r.sessions[token] = &clone
	r.mu.Unlock()

	return token, nil
}

// Logout removes the mapping, succeeding only if the token existed.
func (r *SessionRegistry) Logout(_ context.Context, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return false
	}
	delete(r.sessions, token)
	return true
}

func (r *SessionRegistry) Validate(_ context.Context, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[token]
	return ok
}

func (r *SessionRegistry) UserByToken(_ context.Context, token string) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	clone := *u
	return &clone, true
}

func (r *SessionRegistry) ActiveSessions(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) ClearAll(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*domain.User)
}
