package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/api/metrics"
	"github.com/researchnotes/portal-api/internal/api/session"
	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

// AuthHandler serves the signup, login, and logout form flows. Outcomes are
// reported as flash messages across a redirect, mirroring classic
// post/redirect/get form handling.
type AuthHandler struct {
	accounts ports.AccountService
	sessions *session.Manager
	flashes  flashWriter
	logger   zerolog.Logger
}

func NewAuthHandler(accounts ports.AccountService, sessions *session.Manager, flashStore ports.FlashStore, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		flashes:  flashWriter{store: flashStore},
		logger:   logger,
	}
}

type signupRequest struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Role      string `form:"role"`
	AdminCode string `form:"admin_code"`
}

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

// SignupPage handles GET /signup.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", echo.Map{
		"flashes": h.flashes.pop(c),
	})
}

// Signup handles POST /signup.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username    formData  string  true   "Username"
// @Param        email       formData  string  true   "Email"
// @Param        password    formData  string  true   "Password"
// @Param        role        formData  string  true   "Requested role (user or admin)"
// @Param        admin_code  formData  string  false  "Admin registration code"
// @Success      302
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		h.flashes.add(c, flashError, "Invalid form submission")
		return c.Redirect(http.StatusFound, "/signup")
	}

	_, err := h.accounts.Signup(c.Request().Context(), ports.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		AdminCode: req.AdminCode,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupRoleLabel(req.Role), signupResultLabel(err)).Inc()
		h.flashes.add(c, flashError, signupErrorMessage(err, h.logger, c))
		return c.Redirect(http.StatusFound, "/signup")
	}

	metrics.SignupsTotal.WithLabelValues(signupRoleLabel(req.Role), "created").Inc()
	h.flashes.add(c, flashSuccess, "Account created successfully. Please login.")
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"flashes": h.flashes.pop(c),
	})
}

// Login handles POST /login.
//
// @Summary      Log in and establish a session
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Param        role      formData  string  true  "Role to log in as (user or admin)"
// @Success      302
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		h.flashes.add(c, flashError, "Invalid form submission")
		return c.Redirect(http.StatusFound, "/login")
	}

	identity, role, err := h.accounts.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResultLabel(err)).Inc()
		h.flashes.add(c, flashError, loginErrorMessage(err, h.logger, c))
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := h.sessions.Issue(c, identity.ID, identity.Username); err != nil {
		h.logger.Error().Err(err).Str("username", identity.Username).Msg("failed to establish session")
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.flashes.add(c, flashError, "Something went wrong. Please try again.")
		return c.Redirect(http.StatusFound, "/login")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if role == domain.RoleAdmin {
		return c.Redirect(http.StatusFound, "/admin-home")
	}
	return c.Redirect(http.StatusFound, "/home")
}

// Logout handles GET and POST /logout. Always succeeds, even without a
// session to tear down.
func (h *AuthHandler) Logout(c echo.Context) error {
	_, username, _ := currentIdentity(c)

	if err := h.sessions.Clear(c); err != nil {
		h.logger.Error().Err(err).Msg("failed to destroy session")
	}
	if username != "" {
		h.accounts.RecordLogout(username)
	}

	h.flashes.add(c, flashSuccess, "You have been logged out")
	return c.Redirect(http.StatusFound, "/login")
}

func signupRoleLabel(role string) string {
	switch role {
	case domain.RequestedRoleUser, domain.RequestedRoleAdmin:
		return role
	default:
		return "other"
	}
}

func signupResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrInvalidAdminCode):
		return "rejected"
	default:
		return "error"
	}
}

func signupErrorMessage(err error, logger zerolog.Logger, c echo.Context) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, domain.ErrUserExists):
		return "Username already exists"
	case errors.Is(err, domain.ErrInvalidAdminCode):
		return "Invalid admin code"
	}
	logger.Error().Err(err).Str("path", c.Path()).Msg("signup failed")
	return "Something went wrong. Please try again."
}

func loginResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_credentials"
	case errors.Is(err, domain.ErrNotCustomer),
		errors.Is(err, domain.ErrNotAdmin),
		errors.Is(err, domain.ErrInvalidRole):
		return "wrong_role"
	default:
		return "error"
	}
}

func loginErrorMessage(err error, logger zerolog.Logger, c echo.Context) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, domain.ErrNotCustomer):
		return "You are not registered as a user"
	case errors.Is(err, domain.ErrNotAdmin):
		return "You are not registered as an admin"
	case errors.Is(err, domain.ErrInvalidRole):
		return "Invalid login attempt"
	}
	logger.Error().Err(err).Str("path", c.Path()).Msg("login failed")
	return "Something went wrong. Please try again."
}
