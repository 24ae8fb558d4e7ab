package ports

import (
	"context"
	"time"
)

// Session binds a session id to an authenticated identity.
type Session struct {
	ID         string
	IdentityID string
	Username   string
}

// SessionStore is the server-side session record. Destroying the record
// revokes the session even while its cookie is still cryptographically valid.
type SessionStore interface {
	Create(ctx context.Context, identityID, username string, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Destroy(ctx context.Context, sessionID string) error
}

// Flash is a one-shot user-visible message surviving exactly one redirect.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// FlashStore queues flash messages per browser, keyed by a flash cookie id.
// Pop drains and deletes the queue.
type FlashStore interface {
	Push(ctx context.Context, flashID string, flash Flash) error
	Pop(ctx context.Context, flashID string) ([]Flash, error)
}
