package ports

import (
	"context"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

// SignupInput carries the raw signup form values.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	Role      string
	AdminCode string
}

// LoginInput carries the raw login form values.
type LoginInput struct {
	Username string
	Password string
	Role     string
}

type AccountService interface {
	// Signup validates the input, creates the identity and its role profile,
	// and returns the created identity.
	Signup(ctx context.Context, input SignupInput) (*domain.Identity, error)
	// Login authenticates credentials and verifies the requested role has a
	// matching profile record. Returns the identity and its resolved role.
	Login(ctx context.Context, input LoginInput) (*domain.Identity, domain.Role, error)
	// RoleOf derives the role of an identity by profile existence lookups,
	// checking customer before admin.
	RoleOf(ctx context.Context, identityID string) (domain.Role, error)
	// IsAdmin reports whether an admin profile exists for the identity.
	IsAdmin(ctx context.Context, identityID string) (bool, error)
	// RecordLogout emits the audit trail entry for a session teardown.
	RecordLogout(username string)
}
