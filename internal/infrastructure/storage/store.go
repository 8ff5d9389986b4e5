// Package storage persists the library collections as flat JSON files.
// Loads fall back to a hard-coded default set on any read failure; saves
// write whole-collection snapshots and report failures as
// domain.ErrPersistenceFailed rather than swallowing them.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/api/metrics"
	"github.com/biblioteca/library-system/internal/core/domain"
)

const (
	usersFile = "users.json"
	booksFile = "books.json"
	loansFile = "loans.json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store reads and writes the three collection files under a data directory.
// A mutex serializes file writes; in-memory state is guarded elsewhere.
type Store struct {
	dir string
	log zerolog.Logger
	mu  sync.Mutex
}

func New(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// LoadUsers returns the users file contents, or the default seed accounts
// when the file is missing or unreadable.
func (s *Store) LoadUsers(_ context.Context) []*domain.User {
	var records []userRecord
	if err := s.readFile(usersFile, &records); err != nil {
		s.log.Warn().Err(err).Msg("loading users failed, seeding defaults")
		return defaultUsers()
	}

	users := make([]*domain.User, len(records))
	for i, r := range records {
		users[i] = fromUserRecord(r)
	}
	s.log.Info().Int("count", len(users)).Msg("users loaded")
	return users
}

// LoadBooks returns the books file contents, or the default seed catalog
// when the file is missing or unreadable. Records with an unknown book type
// are skipped with a warning.
func (s *Store) LoadBooks(_ context.Context) []*domain.Book {
	var records []bookRecord
	if err := s.readFile(booksFile, &records); err != nil {
		s.log.Warn().Err(err).Msg("loading books failed, seeding defaults")
		return defaultBooks()
	}

	books := make([]*domain.Book, 0, len(records))
	for _, r := range records {
		book, err := fromBookRecord(r)
		if err != nil {
			s.log.Warn().Err(err).Int64("book_id", r.ID).Str("book_type", r.BookType).Msg("skipping book record")
			continue
		}
		books = append(books, book)
	}
	s.log.Info().Int("count", len(books)).Msg("books loaded")
	return books
}

// LoadLoans returns the loans file contents, or an empty registry when the
// file is missing or unreadable.
func (s *Store) LoadLoans(_ context.Context) []*domain.Loan {
	var records []loanRecord
	if err := s.readFile(loansFile, &records); err != nil {
		s.log.Warn().Err(err).Msg("loading loans failed, starting empty")
		return nil
	}

	loans := make([]*domain.Loan, len(records))
	for i, r := range records {
		loans[i] = fromLoanRecord(r)
	}
	s.log.Info().Int("count", len(loans)).Msg("loans loaded")
	return loans
}

func (s *Store) SaveUsers(_ context.Context, users []*domain.User) error {
	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = toUserRecord(u)
	}
	return s.writeFile(usersFile, records)
}

func (s *Store) SaveBooks(_ context.Context, books []*domain.Book) error {
	records := make([]bookRecord, len(books))
	for i, b := range books {
		records[i] = toBookRecord(b)
	}
	return s.writeFile(booksFile, records)
}

func (s *Store) SaveLoans(_ context.Context, loans []*domain.Loan) error {
	records := make([]loanRecord, len(loans))
	for i, l := range loans {
		records[i] = toLoanRecord(l)
	}
	return s.writeFile(loansFile, records)
}

// HealthCheck verifies the data directory exists and is writable.
func (s *Store) HealthCheck(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	probe := filepath.Join(s.dir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data dir not writable: %w", err)
	}
	return os.Remove(probe)
}

func (s *Store) readFile(name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Store) writeFile(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistenceFailed, name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		metrics.SnapshotFailuresTotal.WithLabelValues(name).Inc()
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailed, name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		metrics.SnapshotFailuresTotal.WithLabelValues(name).Inc()
		s.log.Error().Err(err).Str("file", name).Msg("snapshot write failed")
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailed, name, err)
	}

	s.log.Debug().Str("file", name).Msg("snapshot written")
	return nil
}
