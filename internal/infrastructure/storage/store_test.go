package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
)

func TestStore_LoadUsers_DefaultsWhenMissing(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())

	users := store.LoadUsers(context.Background())
	if len(users) != 3 {
		t.Fatalf("expected 3 seed users, got %d", len(users))
	}
	if users[0].Username != "admin" || users[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected first seed user: %+v", users[0])
	}
	// Seed passwords are stored hashed, never in the clear.
	for _, u := range users {
		if u.PasswordHash == "" || u.PasswordHash == "admin123" {
			t.Fatalf("seed user %s has unhashed password", u.Username)
		}
	}
}

func TestStore_LoadBooks_DefaultsWhenMissing(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())

	books := store.LoadBooks(context.Background())
	if len(books) != 3 {
		t.Fatalf("expected 3 seed books, got %d", len(books))
	}
	types := map[domain.BookType]bool{}
	for _, b := range books {
		types[b.Type] = true
		if !b.Available {
			t.Fatalf("seed book %q should start available", b.Title)
		}
	}
	if !types[domain.BookTypeDigital] || !types[domain.BookTypeAudio] || !types[domain.BookTypeEBook] {
		t.Fatalf("seed catalog should cover all variants, got %v", types)
	}
}

func TestStore_LoadLoans_EmptyWhenMissing(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())

	if loans := store.LoadLoans(context.Background()); len(loans) != 0 {
		t.Fatalf("expected empty loan registry, got %d", len(loans))
	}
}

func TestStore_UsersRoundTrip(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())
	ctx := context.Background()

	in := []*domain.User{
		{ID: 1, Username: "alice", PasswordHash: "$2a$10$hash", Email: "alice@example.com", Role: domain.RoleMember, FullName: "Alice A"},
	}
	if err := store.SaveUsers(ctx, in); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}

	out := store.LoadUsers(ctx)
	if len(out) != 1 {
		t.Fatalf("expected 1 user, got %d", len(out))
	}
	if out[0].Username != "alice" || out[0].PasswordHash != "$2a$10$hash" || out[0].Role != domain.RoleMember {
		t.Fatalf("round trip lost data: %+v", out[0])
	}
}

func TestStore_BooksRoundTrip_AllVariants(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())
	ctx := context.Background()

	digital, _ := domain.NewBook(domain.BookTypeDigital, domain.BookSpec{Title: "D", Author: "a", ISBN: "1", Category: "c", FileFormat: "EPUB", FileSizeMB: 2.5})
	digital.ID = 1
	digital.Available = false
	audio, _ := domain.NewBook(domain.BookTypeAudio, domain.BookSpec{Title: "A", Author: "a", ISBN: "2", Category: "c", Narrator: "N", DurationMinutes: 90, AudioFormat: "AAC"})
	audio.ID = 2
	ebook, _ := domain.NewBook(domain.BookTypeEBook, domain.BookSpec{Title: "E", Author: "a", ISBN: "3", Category: "c", Interactive: true, PageCount: 120, Publisher: "P"})
	ebook.ID = 3

	if err := store.SaveBooks(ctx, []*domain.Book{digital, audio, ebook}); err != nil {
		t.Fatalf("SaveBooks: %v", err)
	}

	out := store.LoadBooks(ctx)
	if len(out) != 3 {
		t.Fatalf("expected 3 books, got %d", len(out))
	}
	if out[0].Digital == nil || out[0].Digital.FileFormat != "EPUB" || out[0].Digital.FileSizeMB != 2.5 {
		t.Fatalf("digital variant lost: %+v", out[0])
	}
	if out[0].Available {
		t.Fatalf("availability flag lost on save")
	}
	if out[1].Audio == nil || out[1].Audio.Narrator != "N" || out[1].Audio.DurationMinutes != 90 || out[1].Audio.AudioFormat != "AAC" {
		t.Fatalf("audio variant lost: %+v", out[1])
	}
	if out[2].EBook == nil || !out[2].EBook.Interactive || out[2].EBook.PageCount != 120 || out[2].EBook.Publisher != "P" {
		t.Fatalf("ebook variant lost: %+v", out[2])
	}
}

func TestStore_LoadBooks_SkipsUnknownType(t *testing.T) {
	dir := t.TempDir()
	raw := `[
  {"id": 1, "title": "Good", "author": "a", "isbn": "1", "category": "c", "available": true, "bookType": "DIGITAL", "fileFormat": "PDF", "fileSizeMB": 1},
  {"id": 2, "title": "Bad", "author": "a", "isbn": "2", "category": "c", "available": true, "bookType": "PAPER"}
]`
	if err := os.WriteFile(filepath.Join(dir, "books.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := New(dir, zerolog.Nop())
	books := store.LoadBooks(context.Background())
	if len(books) != 1 || books[0].Title != "Good" {
		t.Fatalf("expected only the known-type record, got %+v", books)
	}
}

func TestStore_LoansRoundTrip(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := domain.NewLoan("john", 1, "Clean Code", now)
	open.ID = 1
	closed := domain.NewLoan("guest", 2, "El Quijote", now)
	closed.ID = 2
	closed.MarkReturned(now.Add(24 * time.Hour))

	if err := store.SaveLoans(ctx, []*domain.Loan{open, closed}); err != nil {
		t.Fatalf("SaveLoans: %v", err)
	}

	out := store.LoadLoans(ctx)
	if len(out) != 2 {
		t.Fatalf("expected 2 loans, got %d", len(out))
	}
	if out[0].Returned || out[0].ReturnDate != nil {
		t.Fatalf("open loan must stay open: %+v", out[0])
	}
	if !out[0].DueDate.Equal(now.AddDate(0, 0, domain.LoanPeriodDays)) {
		t.Fatalf("due date lost on round trip")
	}
	if !out[1].Returned || out[1].ReturnDate == nil {
		t.Fatalf("closed loan must stay closed: %+v", out[1])
	}
}

func TestStore_SaveFailureIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	// A file where the data directory should be makes every write fail.
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	store := New(filepath.Join(blocker, "data"), zerolog.Nop())
	err := store.SaveUsers(context.Background(), nil)
	if !errors.Is(err, domain.ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
}

func TestStore_HealthCheck(t *testing.T) {
	store := New(t.TempDir(), zerolog.Nop())
	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck on a writable dir: %v", err)
	}
}
