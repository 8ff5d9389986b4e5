package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// UserRepository defines the interface for user account storage.
type UserRepository interface {
	// Create stores a new user, assigning an ID when the sentinel zero value
	// is supplied. Returns domain.ErrUserExists when the username or email
	// is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	All(ctx context.Context) ([]*domain.User, error)
}
