package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

// AuthService implements registration, login and session lifecycle on top
// of the user repository and the session registry.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRegistry
	snapshots ports.Snapshotter
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRegistry,
	snapshots ports.Snapshotter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, sessions: sessions, snapshots: snapshots, log: log}
}

// Register creates a member account. All fields are required; duplicate
// usernames or emails fail with domain.ErrUserExists. The user collection
// is snapshotted before returning, and a failed snapshot is reported.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(input.Username) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.FullName) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(input.Email),
		Role:         domain.RoleMember,
		FullName:     strings.TrimSpace(input.FullName),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")

	all, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.snapshots.SaveUsers(ctx, all); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return created, nil
}

// Login verifies the password and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Login(ctx, user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) bool {
	return s.sessions.Logout(ctx, token)
}

func (s *AuthService) Validate(ctx context.Context, token string) bool {
	return s.sessions.Validate(ctx, token)
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	user, ok := s.sessions.UserByToken(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	return user, nil
}
