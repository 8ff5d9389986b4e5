package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and opens a session, returning its token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout closes the session and reports whether the token existed.
	Logout(ctx context.Context, token string) bool
	// Validate reports whether the token belongs to an active session.
	Validate(ctx context.Context, token string) bool
	// CurrentUser resolves the user behind an active session token.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
