package domain

import (
	"errors"
	"time"
)

// Role is derived from the existence of a profile record, never stored on the
// identity itself. An identity created with an unknown role value has no
// profile and therefore RoleNone.
type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Signup/login form values for the requested role. "user" maps to a
// CustomerProfile, "admin" to an AdminProfile.
const (
	RequestedRoleUser  = "user"
	RequestedRoleAdmin = "admin"
)

var ErrMissingFields = errors.New("all fields are required")
var ErrUserExists = errors.New("username already exists")
var ErrInvalidAdminCode = errors.New("invalid admin code")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserNotFound = errors.New("user not found")
var ErrNotCustomer = errors.New("not registered as a user")
var ErrNotAdmin = errors.New("not registered as an admin")
var ErrInvalidRole = errors.New("invalid login attempt")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("authentication required")

// Identity is an authenticable account. Role membership lives in the profile
// records, not here.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CustomerProfile marks an identity as a customer. Existence is membership.
type CustomerProfile struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminProfile marks an identity as an admin. Existence is membership.
type AdminProfile struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	CreatedAt  time.Time `json:"created_at"`
}
