package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// Snapshotter persists whole-collection snapshots at explicit save points.
// Save failures surface as domain.ErrPersistenceFailed instead of being
// swallowed, so callers can report durability loss.
type Snapshotter interface {
	SaveUsers(ctx context.Context, users []*domain.User) error
	SaveBooks(ctx context.Context, books []*domain.Book) error
	SaveLoans(ctx context.Context, loans []*domain.Loan) error
}
