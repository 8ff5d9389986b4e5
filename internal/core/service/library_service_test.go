package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type libraryFixture struct {
	svc      *LibraryService
	catalog  *Catalog
	sessions *SessionRegistry
	snaps    *stubSnapshotter

	memberToken string
	adminToken  string
}

func newLibraryFixture(t *testing.T) *libraryFixture {
	t.Helper()

	catalog := NewCatalog(zerolog.Nop())
	catalog.AddBook(testBook(t, "Clean Code", "tech"))
	catalog.AddBook(testBook(t, "El Quijote", "classics"))

	sessions := NewSessionRegistry()
	memberToken, err := sessions.Login(context.Background(), &domain.User{ID: 2, Username: "john", Role: domain.RoleMember})
	if err != nil {
		t.Fatalf("member login: %v", err)
	}
	adminToken, err := sessions.Login(context.Background(), &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	snaps := &stubSnapshotter{}
	return &libraryFixture{
		svc:         NewLibraryService(sessions, catalog, snaps, zerolog.Nop()),
		catalog:     catalog,
		sessions:    sessions,
		snaps:       snaps,
		memberToken: memberToken,
		adminToken:  adminToken,
	}
}

func TestLibraryService_Borrow_Success(t *testing.T) {
	f := newLibraryFixture(t)

	loan, err := f.svc.Borrow(context.Background(), f.memberToken, 1)
	if err != nil {
		t.Fatalf("Borrow returned error: %v", err)
	}
	if loan.Username != "john" || loan.BookID != 1 || loan.BookTitle != "Clean Code" {
		t.Fatalf("unexpected loan: %+v", loan)
	}
	if !loan.DueDate.Equal(loan.LoanDate.AddDate(0, 0, domain.LoanPeriodDays)) {
		t.Fatalf("due date must be loan date plus %d days", domain.LoanPeriodDays)
	}
	if loan.Returned {
		t.Fatalf("fresh loan must be open")
	}

	book, _ := f.catalog.BookByID(1)
	if book.Available {
		t.Fatalf("borrowed book should be unavailable")
	}
	if f.snaps.loanSaves != 1 || f.snaps.bookSaves != 1 {
		t.Fatalf("borrow must snapshot loans and books, got %d/%d", f.snaps.loanSaves, f.snaps.bookSaves)
	}
}

func TestLibraryService_Borrow_InvalidSession(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.Borrow(context.Background(), "bogus", 1); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestLibraryService_Borrow_Conflicts(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.Borrow(context.Background(), f.memberToken, 99); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}

	if _, err := f.svc.Borrow(context.Background(), f.memberToken, 1); err != nil {
		t.Fatalf("first borrow failed: %v", err)
	}
	if _, err := f.svc.Borrow(context.Background(), f.adminToken, 1); !errors.Is(err, domain.ErrBookUnavailable) {
		t.Fatalf("expected ErrBookUnavailable, got %v", err)
	}
}

func TestLibraryService_Borrow_SnapshotFailureSurfaces(t *testing.T) {
	f := newLibraryFixture(t)
	f.snaps.loansErr = domain.ErrPersistenceFailed

	if _, err := f.svc.Borrow(context.Background(), f.memberToken, 1); !errors.Is(err, domain.ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
}

func TestLibraryService_Return_Success(t *testing.T) {
	f := newLibraryFixture(t)

	loan, err := f.svc.Borrow(context.Background(), f.memberToken, 1)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}

	returned, err := f.svc.Return(context.Background(), f.memberToken, loan.ID)
	if err != nil {
		t.Fatalf("Return returned error: %v", err)
	}
	if !returned.Returned || returned.ReturnDate == nil {
		t.Fatalf("loan not closed: %+v", returned)
	}

	book, _ := f.catalog.BookByID(1)
	if !book.Available {
		t.Fatalf("returned book should be available again")
	}
}

func TestLibraryService_Return_Errors(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.Return(context.Background(), "bogus", 1); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if _, err := f.svc.Return(context.Background(), f.memberToken, 99); !errors.Is(err, domain.ErrLoanNotFound) {
		t.Fatalf("expected ErrLoanNotFound, got %v", err)
	}

	loan, _ := f.svc.Borrow(context.Background(), f.memberToken, 1)
	if _, err := f.svc.Return(context.Background(), f.memberToken, loan.ID); err != nil {
		t.Fatalf("return: %v", err)
	}
	if _, err := f.svc.Return(context.Background(), f.memberToken, loan.ID); !errors.Is(err, domain.ErrLoanAlreadyReturned) {
		t.Fatalf("expected ErrLoanAlreadyReturned, got %v", err)
	}
}

func TestLibraryService_ReadsRequireSession(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.Catalog(context.Background(), "bogus"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("Catalog: expected ErrInvalidSession, got %v", err)
	}
	if _, err := f.svc.Search(context.Background(), "bogus", "code"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("Search: expected ErrInvalidSession, got %v", err)
	}
	if _, err := f.svc.LoanHistory(context.Background(), "bogus"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("LoanHistory: expected ErrInvalidSession, got %v", err)
	}
}

func TestLibraryService_LoanHistory_OnlyOwnLoans(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.Borrow(context.Background(), f.memberToken, 1); err != nil {
		t.Fatalf("member borrow: %v", err)
	}
	if _, err := f.svc.Borrow(context.Background(), f.adminToken, 2); err != nil {
		t.Fatalf("admin borrow: %v", err)
	}

	history, err := f.svc.LoanHistory(context.Background(), f.memberToken)
	if err != nil {
		t.Fatalf("LoanHistory: %v", err)
	}
	if len(history) != 1 || history[0].Username != "john" {
		t.Fatalf("expected only john's loans, got %+v", history)
	}
}

func TestLibraryService_AdminGating(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.AllLoans(context.Background(), f.memberToken); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("AllLoans as member: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Statistics(context.Background(), f.memberToken); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Statistics as member: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.CreateBook(context.Background(), f.memberToken, ports.CreateBookInput{Type: "DIGITAL"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("CreateBook as member: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.AllLoans(context.Background(), f.adminToken); err != nil {
		t.Fatalf("AllLoans as admin: %v", err)
	}
}

func TestLibraryService_CreateBook_AppliesDefaults(t *testing.T) {
	f := newLibraryFixture(t)

	book, err := f.svc.CreateBook(context.Background(), f.adminToken, ports.CreateBookInput{
		Type:     "AUDIO",
		Title:    "Dune",
		Author:   "Frank Herbert",
		ISBN:     "999",
		Category: "scifi",
	})
	if err != nil {
		t.Fatalf("CreateBook returned error: %v", err)
	}
	if book.ID == 0 || !book.Available {
		t.Fatalf("new book must get an id and start available: %+v", book)
	}
	if book.Audio == nil {
		t.Fatalf("expected audio variant")
	}
	if book.Audio.Narrator != domain.DefaultNarrator ||
		book.Audio.DurationMinutes != domain.DefaultDurationMinutes ||
		book.Audio.AudioFormat != domain.DefaultAudioFormat {
		t.Fatalf("defaults not applied: %+v", book.Audio)
	}
	if f.snaps.bookSaves != 1 {
		t.Fatalf("create must snapshot books, got %d saves", f.snaps.bookSaves)
	}
}

func TestLibraryService_CreateBook_UnknownType(t *testing.T) {
	f := newLibraryFixture(t)

	if _, err := f.svc.CreateBook(context.Background(), f.adminToken, ports.CreateBookInput{Type: "PAPER"}); !errors.Is(err, domain.ErrUnknownBookType) {
		t.Fatalf("expected ErrUnknownBookType, got %v", err)
	}
}

func TestLibraryService_Statistics(t *testing.T) {
	f := newLibraryFixture(t)

	loan, _ := f.svc.Borrow(context.Background(), f.memberToken, 1)
	_, _ = f.svc.Borrow(context.Background(), f.adminToken, 2)
	_, _ = f.svc.Return(context.Background(), f.memberToken, loan.ID)

	stats, err := f.svc.Statistics(context.Background(), f.adminToken)
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if stats.Books != 2 || stats.Loans != 2 || stats.ActiveLoans != 1 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}
