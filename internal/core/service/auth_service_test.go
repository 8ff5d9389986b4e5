package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

// stubSnapshotter records save calls and fails on demand. Shared by the
// auth and library service tests.
type stubSnapshotter struct {
	userSaves int
	bookSaves int
	loanSaves int

	usersErr error
	booksErr error
	loansErr error
}

func (s *stubSnapshotter) SaveUsers(_ context.Context, _ []*domain.User) error {
	s.userSaves++
	return s.usersErr
}

func (s *stubSnapshotter) SaveBooks(_ context.Context, _ []*domain.Book) error {
	s.bookSaves++
	return s.booksErr
}

func (s *stubSnapshotter) SaveLoans(_ context.Context, _ []*domain.Loan) error {
	s.loanSaves++
	return s.loansErr
}

func newAuthService(snapshots ports.Snapshotter) *AuthService {
	return NewAuthService(NewUserStore(nil), NewSessionRegistry(), snapshots, zerolog.Nop())
}

func registerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Password: "pw1234",
		Email:    username + "@example.com",
		FullName: "Test User",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	snaps := &stubSnapshotter{}
	svc := newAuthService(snaps)

	user, err := svc.Register(context.Background(), registerInput("alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("registration must create members, got %s", user.Role)
	}
	if user.PasswordHash == "pw1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if snaps.userSaves != 1 {
		t.Fatalf("expected one user snapshot, got %d", snaps.userSaves)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})

	cases := []ports.RegisterInput{
		{Username: "", Password: "pw", Email: "a@b.c", FullName: "A"},
		{Username: "a", Password: "  ", Email: "a@b.c", FullName: "A"},
		{Username: "a", Password: "pw", Email: "", FullName: "A"},
		{Username: "a", Password: "pw", Email: "a@b.c", FullName: ""},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})

	if _, err := svc.Register(context.Background(), registerInput("bob")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	// Same email under a different username is also a duplicate.
	dup := registerInput("robert")
	dup.Email = "bob@example.com"
	if _, err := svc.Register(context.Background(), dup); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestAuthService_Register_SnapshotFailureSurfaces(t *testing.T) {
	snaps := &stubSnapshotter{usersErr: domain.ErrPersistenceFailed}
	svc := newAuthService(snaps)

	if _, err := svc.Register(context.Background(), registerInput("carol")); !errors.Is(err, domain.ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})

	if _, err := svc.Register(context.Background(), registerInput("carol")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "pw1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !svc.Validate(context.Background(), token) {
		t.Fatalf("token should validate right after login")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})
	_, _ = svc.Register(context.Background(), registerInput("dave"))

	if _, _, err := svc.Login(context.Background(), "dave", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})

	if _, _, err := svc.Login(context.Background(), "nobody", "pw"); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}

func TestAuthService_LogoutInvalidatesToken(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})
	_, _ = svc.Register(context.Background(), registerInput("erin"))
	token, _, err := svc.Login(context.Background(), "erin", "pw1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !svc.Logout(context.Background(), token) {
		t.Fatalf("logout of a live session should succeed")
	}
	if svc.Validate(context.Background(), token) {
		t.Fatalf("token must be dead after logout")
	}
	if svc.Logout(context.Background(), token) {
		t.Fatalf("second logout of the same token should fail")
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})
	_, _ = svc.Register(context.Background(), registerInput("frank"))
	token, _, _ := svc.Login(context.Background(), "frank", "pw1234")

	user, err := svc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if user.Username != "frank" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), "bogus"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestAuthService_ConcurrentLoginsGetDistinctTokens(t *testing.T) {
	svc := newAuthService(&stubSnapshotter{})
	_, _ = svc.Register(context.Background(), registerInput("grace"))

	first, _, err := svc.Login(context.Background(), "grace", "pw1234")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, _, err := svc.Login(context.Background(), "grace", "pw1234")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first == second {
		t.Fatalf("each login must mint a fresh token")
	}
	// Both sessions stay live independently.
	if !svc.Validate(context.Background(), first) || !svc.Validate(context.Background(), second) {
		t.Fatalf("both sessions should be valid")
	}
}
