package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

// LibraryService coordinates the session registry, the catalog and the
// snapshot store for the composite library operations. The catalog performs
// the compound state changes atomically; this layer sequences session
// validation, the catalog call, and the persistence save point.
type LibraryService struct {
	sessions  ports.SessionRegistry
	catalog   *Catalog
	snapshots ports.Snapshotter
	log       zerolog.Logger
}

func NewLibraryService(
	sessions ports.SessionRegistry,
	catalog *Catalog,
	snapshots ports.Snapshotter,
	log zerolog.Logger,
) *LibraryService {
	return &LibraryService{sessions: sessions, catalog: catalog, snapshots: snapshots, log: log}
}

// Borrow checks the session, checks out the book atomically and snapshots
// loans and books. Each failure keeps its cause: ErrInvalidSession,
// ErrBookNotFound, ErrBookUnavailable or ErrPersistenceFailed.
func (s *LibraryService) Borrow(ctx context.Context, token string, bookID int64) (*domain.Loan, error) {
	user, ok := s.sessions.UserByToken(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidSession
	}

	loan, err := s.catalog.Checkout(user.Username, bookID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("borrow book %d: %w", bookID, err)
	}

	if err := s.saveCirculation(ctx); err != nil {
		return nil, fmt.Errorf("borrow book %d: %w", bookID, err)
	}

	return loan, nil
}

// Return checks the session, closes the loan atomically and snapshots
// loans and books.
func (s *LibraryService) Return(ctx context.Context, token string, loanID int64) (*domain.Loan, error) {
	if !s.sessions.Validate(ctx, token) {
		return nil, domain.ErrInvalidSession
	}

	loan, err := s.catalog.Return(loanID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("return loan %d: %w", loanID, err)
	}

	if err := s.saveCirculation(ctx); err != nil {
		return nil, fmt.Errorf("return loan %d: %w", loanID, err)
	}

	return loan, nil
}

func (s *LibraryService) Catalog(ctx context.Context, token string) ([]*domain.Book, error) {
	if !s.sessions.Validate(ctx, token) {
		return nil, domain.ErrInvalidSession
	}
	return s.catalog.AllBooks(), nil
}

func (s *LibraryService) BookByID(ctx context.Context, token string, id int64) (*domain.Book, error) {
	if !s.sessions.Validate(ctx, token) {
		return nil, domain.ErrInvalidSession
	}
	book, ok := s.catalog.BookByID(id)
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

func (s *LibraryService) Search(ctx context.Context, token, term string) ([]*domain.Book, error) {
	if !s.sessions.Validate(ctx, token) {
		return nil, domain.ErrInvalidSession
	}
	return s.catalog.SearchByTitle(term), nil
}

func (s *LibraryService) BooksByCategory(ctx context.Context, token, category string) ([]*domain.Book, error) {
	if !s.sessions.Validate(ctx, token) {
		return nil, domain.ErrInvalidSession
	}
	return s.catalog.BooksByCategory(category), nil
}

func (s *LibraryService) LoanHistory(ctx context.Context, token string) ([]*domain.Loan, error) {
	user, ok := s.sessions.UserByToken(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	return s.catalog.LoansByUser(user.Username), nil
}

func (s *LibraryService) LoanByID(ctx context.Context, token string, id int64) (*domain.Loan, error) {
	if !s.sessions.Validate(ctx, token) {
		return nil, domain.ErrInvalidSession
	}
	loan, ok := s.catalog.LoanByID(id)
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

// AllLoans lists the full loan registry. Admin only.
func (s *LibraryService) AllLoans(ctx context.Context, token string) ([]*domain.Loan, error) {
	if _, err := s.requireAdmin(ctx, token); err != nil {
		return nil, err
	}
	return s.catalog.AllLoans(), nil
}

// CreateBook builds the requested variant, adds it to the catalog and
// snapshots books. Admin only.
func (s *LibraryService) CreateBook(ctx context.Context, token string, input ports.CreateBookInput) (*domain.Book, error) {
	user, err := s.requireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	book, err := domain.NewBook(domain.BookType(input.Type), domain.BookSpec{
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            input.ISBN,
		Category:        input.Category,
		FileFormat:      input.FileFormat,
		FileSizeMB:      input.FileSizeMB,
		Narrator:        input.Narrator,
		DurationMinutes: input.DurationMinutes,
		AudioFormat:     input.AudioFormat,
		Interactive:     input.Interactive,
		PageCount:       input.PageCount,
		Publisher:       input.Publisher,
	})
	if err != nil {
		return nil, err
	}

	s.catalog.AddBook(book)

	s.log.Info().
		Int64("book_id", book.ID).
		Str("title", book.Title).
		Str("created_by", user.Username).
		Msg("book created")

	if err := s.snapshots.SaveBooks(ctx, s.catalog.AllBooks()); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	return book.Clone(), nil
}

// Statistics returns the catalog/loan aggregates. Admin only.
func (s *LibraryService) Statistics(ctx context.Context, token string) (*ports.Statistics, error) {
	if _, err := s.requireAdmin(ctx, token); err != nil {
		return nil, err
	}
	books, loans, active := s.catalog.Statistics()
	return &ports.Statistics{Books: books, Loans: loans, ActiveLoans: active}, nil
}

func (s *LibraryService) requireAdmin(ctx context.Context, token string) (*domain.User, error) {
	user, ok := s.sessions.UserByToken(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	if !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *LibraryService) saveCirculation(ctx context.Context) error {
	if err := s.snapshots.SaveLoans(ctx, s.catalog.AllLoans()); err != nil {
		return err
	}
	return s.snapshots.SaveBooks(ctx, s.catalog.AllBooks())
}
