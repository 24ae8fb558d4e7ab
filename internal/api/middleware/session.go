package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/api/session"
)

// Context keys set by the session middleware for downstream handlers.
const (
	ContextIdentityID = "identity_id"
	ContextUsername   = "username"
)

// WithSession resolves the session cookie and, when valid, injects the
// authenticated identity into the echo context. Requests without a session
// pass through unauthenticated; handlers that need one use RequireSession.
func WithSession(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := manager.Resolve(c)
			if err != nil {
				return err
			}
			if sess != nil {
				c.Set(ContextIdentityID, sess.IdentityID)
				c.Set(ContextUsername, sess.Username)
			}
			return next(c)
		}
	}
}

// RequireSession rejects unauthenticated requests with 401. It assumes
// WithSession already ran.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(ContextIdentityID).(string); id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
