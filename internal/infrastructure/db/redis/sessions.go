package redis

import (
	"context"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
)

const sessionPrefix = "session:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionStore is the Redis-backed ports.SessionRegistry, for deployments
// that opt out of the in-memory registry. Keys carry no TTL, matching the
// no-expiry session policy; unlike the in-memory registry, sessions here
// survive a process restart.
type SessionStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSessionStore(client *redis.Client, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, log: log}
}

func (s *SessionStore) Login(ctx context.Context, user *domain.User) (string, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionPrefix+token, payload, 0).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionStore) Logout(ctx context.Context, token string) bool {
	n, err := s.client.Del(ctx, sessionPrefix+token).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("session delete failed")
		return false
	}
	return n > 0
}

func (s *SessionStore) Validate(ctx context.Context, token string) bool {
	n, err := s.client.Exists(ctx, sessionPrefix+token).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("session lookup failed")
		return false
	}
	return n > 0
}

func (s *SessionStore) UserByToken(ctx context.Context, token string) (*domain.User, bool) {
	raw, err := s.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Msg("session fetch failed")
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn().Err(err).Msg("session payload corrupt")
		return nil, false
	}
	return &user, true
}

func (s *SessionStore) ActiveSessions(ctx context.Context) int {
	keys, err := s.client.Keys(ctx, sessionPrefix+"*").Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("session count failed")
		return 0
	}
	return len(keys)
}

func (s *SessionStore) ClearAll(ctx context.Context) {
	keys, err := s.client.Keys(ctx, sessionPrefix+"*").Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("session scan failed")
		return
	}
	if len(keys) > 0 {
		_ = s.client.Del(ctx, keys...).Err()
	}
}
