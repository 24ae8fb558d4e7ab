package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/core/ports"
)

// RequireAdmin enforces that the authenticated identity has an admin profile.
// Role membership is derived by an existence lookup on every request, never
// cached in the session. Unauthenticated requests get 401, authenticated
// non-admins 403.
func RequireAdmin(accounts ports.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identityID, _ := c.Get(ContextIdentityID).(string)
			if identityID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			ok, err := accounts.IsAdmin(c.Request().Context(), identityID)
			if err != nil {
				return err
			}
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
