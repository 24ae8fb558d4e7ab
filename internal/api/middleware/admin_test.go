package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

type stubAccounts struct {
	admins map[string]bool
}

func (s *stubAccounts) Signup(_ context.Context, _ ports.SignupInput) (*domain.Identity, error) {
	return nil, nil
}

func (s *stubAccounts) Login(_ context.Context, _ ports.LoginInput) (*domain.Identity, domain.Role, error) {
	return nil, domain.RoleNone, nil
}

func (s *stubAccounts) RoleOf(_ context.Context, identityID string) (domain.Role, error) {
	if s.admins[identityID] {
		return domain.RoleAdmin, nil
	}
	return domain.RoleNone, nil
}

func (s *stubAccounts) IsAdmin(_ context.Context, identityID string) (bool, error) {
	return s.admins[identityID], nil
}

func (s *stubAccounts) RecordLogout(string) {}

func TestRequireAdmin_Allows(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]bool{"id-1": true}}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(ContextIdentityID, "id-1")

	called := false
	handler := RequireAdmin(accounts)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireAdmin_ForbidsNonAdmin(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]bool{}}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(ContextIdentityID, "id-2")

	handler := RequireAdmin(accounts)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRequireAdmin_RejectsUnauthenticated(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]bool{"id-1": true}}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := RequireAdmin(accounts)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
