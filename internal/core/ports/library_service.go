package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// CreateBookInput carries all data needed to add a book to the catalog.
// Variant fields not matching Type are ignored; those left unset take the
// catalog defaults.
type CreateBookInput struct {
	Type     string
	Title    string
	Author   string
	ISBN     string
	Category string

	FileFormat string
	FileSizeMB float64

	Narrator        string
	DurationMinutes int
	AudioFormat     string

	Interactive bool
	PageCount   int
	Publisher   string
}

// Statistics is the aggregate view over the catalog and loan registry.
type Statistics struct {
	Books       int
	Loans       int
	ActiveLoans int
}

// LibraryService coordinates session validation, catalog lookups and loan
// state for the composite library operations. Every operation requires a
// valid session token; admin-only operations additionally check the role.
type LibraryService interface {
	// Borrow opens a loan for the book and flips its availability, as one
	// atomic operation against the catalog.
	Borrow(ctx context.Context, token string, bookID int64) (*domain.Loan, error)
	// Return closes the loan and restores the book's availability.
	Return(ctx context.Context, token string, loanID int64) (*domain.Loan, error)

	Catalog(ctx context.Context, token string) ([]*domain.Book, error)
	BookByID(ctx context.Context, token string, id int64) (*domain.Book, error)
	Search(ctx context.Context, token, term string) ([]*domain.Book, error)
	BooksByCategory(ctx context.Context, token, category string) ([]*domain.Book, error)

	LoanHistory(ctx context.Context, token string) ([]*domain.Loan, error)
	LoanByID(ctx context.Context, token string, id int64) (*domain.Loan, error)

	// AllLoans lists every loan. Admin only.
	AllLoans(ctx context.Context, token string) ([]*domain.Loan, error)
	// CreateBook adds a book to the catalog and persists it. Admin only.
	CreateBook(ctx context.Context, token string, input CreateBookInput) (*domain.Book, error)
	// Statistics returns catalog and loan aggregates. Admin only.
	Statistics(ctx context.Context, token string) (*Statistics, error)
}
