package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

// HomeHandler renders the role-conditional landing pages. Neither page hard
// rejects: an anonymous or roleless visitor just gets the page without role
// context.
type HomeHandler struct {
	accounts ports.AccountService
	flashes  flashWriter
	logger   zerolog.Logger
}

func NewHomeHandler(accounts ports.AccountService, flashStore ports.FlashStore, logger zerolog.Logger) *HomeHandler {
	return &HomeHandler{
		accounts: accounts,
		flashes:  flashWriter{store: flashStore},
		logger:   logger,
	}
}

// Home handles GET /home. The role is re-derived from the profile stores on
// every request; authenticated identities with neither profile get no
// user_type.
func (h *HomeHandler) Home(c echo.Context) error {
	data := echo.Map{
		"flashes": h.flashes.pop(c),
	}

	if identityID, username, ok := currentIdentity(c); ok {
		data["username"] = username

		role, err := h.accounts.RoleOf(c.Request().Context(), identityID)
		if err != nil {
			return err
		}
		switch role {
		case domain.RoleCustomer:
			data["user_type"] = "customer"
		case domain.RoleAdmin:
			data["user_type"] = "admin"
		}
	}

	return c.Render(http.StatusOK, "home.html", data)
}

// AdminHome handles GET /admin-home. Admin context is only added when the
// visitor is authenticated and has an admin profile; everyone else sees the
// bare page rather than a redirect.
func (h *HomeHandler) AdminHome(c echo.Context) error {
	data := echo.Map{
		"flashes": h.flashes.pop(c),
	}

	if identityID, username, ok := currentIdentity(c); ok {
		isAdmin, err := h.accounts.IsAdmin(c.Request().Context(), identityID)
		if err != nil {
			return err
		}
		if isAdmin {
			data["admin_user"] = username
		}
	}

	return c.Render(http.StatusOK, "admin_home.html", data)
}
