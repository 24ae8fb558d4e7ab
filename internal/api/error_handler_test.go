package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

func newErrorEcho(log zerolog.Logger, err error) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.GET("/boom", func(echo.Context) error {
		return err
	})
	return e
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"empty text", domain.ErrEmptyText, http.StatusBadRequest},
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not an admin", domain.ErrNotAdmin, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"duplicate username", domain.ErrUserExists, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newErrorEcho(zerolog.Nop(), tt.err)

			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid envelope: %v (%s)", err, rec.Body.String())
			}
			if body["error"] == "" {
				t.Fatalf("envelope missing error message: %s", rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	e := newErrorEcho(zerolog.Nop(), echo.NewHTTPError(http.StatusUnauthorized, "authentication required"))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authentication required") {
		t.Fatalf("message not carried through: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsLogged500(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	e := newErrorEcho(log, errors.New("mongo exploded"))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked to the client: %q", body["error"])
	}
	if strings.Contains(rec.Body.String(), "mongo exploded") {
		t.Fatalf("cause leaked in response body: %s", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "mongo exploded") || !strings.Contains(logs.String(), "unhandled error") {
		t.Fatalf("cause not logged: %s", logs.String())
	}
}
