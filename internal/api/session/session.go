// Package session issues and resolves the portal's authenticated sessions.
// The cookie value is an HS256 JWT carrying the server-side session id; the
// id is looked up in the session store on every request so a destroyed
// session is rejected even while its cookie signature is still valid.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/core/ports"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "portal_session"

type Manager struct {
	store  ports.SessionStore
	secret string
	ttl    time.Duration
}

func NewManager(store ports.SessionStore, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, secret: secret, ttl: ttl}
}

// Issue creates a session record and sets the signed session cookie.
func (m *Manager) Issue(c echo.Context, identityID, username string) error {
	sess, err := m.store.Create(c.Request().Context(), identityID, username, m.ttl)
	if err != nil {
		return err
	}

	claims := jwt.MapClaims{
		"sid":      sess.ID,
		"sub":      identityID,
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve returns the session bound to the request cookie, or nil when the
// request carries no valid, unrevoked session.
func (m *Manager) Resolve(c echo.Context) (*ports.Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sid, ok := m.parseSessionID(cookie.Value)
	if !ok {
		return nil, nil
	}

	return m.store.Get(c.Request().Context(), sid)
}

// Clear destroys the session record and expires the cookie. Destroying an
// already-absent session is not an error; logout always succeeds.
func (m *Manager) Clear(c echo.Context) error {
	var err error
	if cookie, cerr := c.Cookie(CookieName); cerr == nil && cookie.Value != "" {
		if sid, ok := m.parseSessionID(cookie.Value); ok {
			err = m.store.Destroy(c.Request().Context(), sid)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

func (m *Manager) parseSessionID(token string) (string, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(m.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	sid, _ := claims["sid"].(string)
	return sid, sid != ""
}
