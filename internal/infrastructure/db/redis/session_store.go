package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/researchnotes/portal-api/internal/core/ports"
)

// SessionStore keeps the server-side session records in Redis.
// Key format: session:<sid>, value is the JSON-encoded session, expiring
// with the session TTL. Deleting the key revokes the session immediately.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionRecord struct {
	IdentityID string `json:"identity_id"`
	Username   string `json:"username"`
}

func (s *SessionStore) Create(ctx context.Context, identityID, username string, ttl time.Duration) (*ports.Session, error) {
	sid := uuid.NewString()
	payload, err := json.Marshal(sessionRecord{IdentityID: identityID, Username: username})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sid), payload, ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &ports.Session{ID: sid, IdentityID: identityID, Username: username}, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*ports.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &ports.Session{ID: sessionID, IdentityID: record.IdentityID, Username: record.Username}, nil
}

func (s *SessionStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func sessionKey(sid string) string {
	return "session:" + sid
}
