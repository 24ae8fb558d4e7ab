package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/core/ports"
)

// FlashCookieName identifies the browser's pending flash messages. The
// cookie holds an opaque id; the messages live server-side until rendered.
const FlashCookieName = "portal_flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flashWriter pushes and drains one-shot messages for the form flows.
type flashWriter struct {
	store ports.FlashStore
}

func (f *flashWriter) add(c echo.Context, level, message string) {
	if f.store == nil {
		return
	}

	id := flashID(c)
	if id == "" {
		id = uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     FlashCookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	// A dropped flash only costs the user a status line; never fail the
	// request over it.
	_ = f.store.Push(c.Request().Context(), id, ports.Flash{Level: level, Message: message})
}

func (f *flashWriter) pop(c echo.Context) []ports.Flash {
	if f.store == nil {
		return nil
	}
	id := flashID(c)
	if id == "" {
		return nil
	}
	flashes, err := f.store.Pop(c.Request().Context(), id)
	if err != nil {
		return nil
	}
	return flashes
}

func flashID(c echo.Context) string {
	cookie, err := c.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
