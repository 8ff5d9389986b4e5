package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// SessionRegistry maps opaque session tokens to authenticated users.
// Tokens carry no expiry; they live until Logout or, for the in-memory
// implementation, until the process exits.
type SessionRegistry interface {
	// Login mints a fresh unique token for the user and stores the mapping.
	Login(ctx context.Context, user *domain.User) (string, error)
	// Logout removes the mapping and reports whether the token existed.
	Logout(ctx context.Context, token string) bool
	// Validate reports whether the token maps to an active session.
	Validate(ctx context.Context, token string) bool
	// UserByToken resolves the user behind a token.
	UserByToken(ctx context.Context, token string) (*domain.User, bool)
	// ActiveSessions returns the number of live sessions.
	ActiveSessions(ctx context.Context) int
	// ClearAll drops every session.
	ClearAll(ctx context.Context)
}
