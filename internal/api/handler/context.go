package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/api/middleware"
)

// currentIdentity extracts the authenticated identity injected by the
// session middleware. ok is false for anonymous requests.
func currentIdentity(c echo.Context) (identityID, username string, ok bool) {
	identityID, _ = c.Get(middleware.ContextIdentityID).(string)
	username, _ = c.Get(middleware.ContextUsername).(string)
	return identityID, username, identityID != ""
}
