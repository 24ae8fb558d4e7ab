package domain

import "time"

// Audit actions recorded by the portal.
const (
	AuditSignup         = "signup"
	AuditLogin          = "login"
	AuditLogout         = "logout"
	AuditNoteCreated    = "note_created"
	AuditCommentCreated = "comment_created"
)

// AuditEvent records a single account or content action for the admin trail.
type AuditEvent struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
