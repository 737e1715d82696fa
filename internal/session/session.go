// Package session issues login sessions. A session is a signed JWT whose
// jti names a Redis key holding the user id, so logout can revoke it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrInvalidSession covers malformed, expired and revoked tokens.
var ErrInvalidSession = errors.New("invalid session")

const keyPrefix = "session:"

// KV is the subset of redis.Cmdable used by Manager.
type KV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Session is an established login.
type Session struct {
	ID        string
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// Manager creates, resolves and revokes sessions.
type Manager struct {
	kv     KV
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager signing tokens with secret.
func NewManager(kv KV, secret string, ttl time.Duration) *Manager {
	return &Manager{kv: kv, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of new sessions.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create starts a session for userID.
func (m *Manager) Create(ctx context.Context, userID int64) (*Session, error) {
	sid := uuid.NewString()
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &jwt.RegisteredClaims{
		ID:        sid,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := m.kv.Set(ctx, keyPrefix+sid, userID, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &Session{ID: sid, UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve validates token and checks that its session has not been revoked.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidSession
	}

	stored, err := m.kv.Get(ctx, keyPrefix+claims.ID).Int64()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if stored != userID {
		return nil, ErrInvalidSession
	}

	s := &Session{ID: claims.ID, UserID: userID, Token: token}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Destroy revokes the session behind token. Unknown or invalid tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	if err := m.kv.Del(ctx, keyPrefix+claims.ID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
