package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

// AccountService implements signup, login, and role derivation.
type AccountService struct {
	identities ports.IdentityRepository
	profiles   ports.ProfileRepository
	audit      ports.AuditRecorder
	adminCode  string
	logger     zerolog.Logger
}

func NewAccountService(
	identities ports.IdentityRepository,
	profiles ports.ProfileRepository,
	audit ports.AuditRecorder,
	adminCode string,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		identities: identities,
		profiles:   profiles,
		audit:      audit,
		adminCode:  adminCode,
		logger:     logger,
	}
}

// Signup creates an identity plus the profile matching the requested role.
// A role value other than "user" or "admin" leaves the identity without a
// profile. Profile insertion failure triggers a compensating identity delete
// so no role-less identity is left behind by a half-completed signup.
func (s *AccountService) Signup(ctx context.Context, input ports.SignupInput) (*domain.Identity, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, domain.ErrMissingFields
	}

	exists, err := s.identities.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	if input.Role == domain.RequestedRoleAdmin && input.AdminCode != s.adminCode {
		return nil, domain.ErrInvalidAdminCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	switch input.Role {
	case domain.RequestedRoleUser:
		err = s.profiles.CreateCustomer(ctx, created.ID)
	case domain.RequestedRoleAdmin:
		err = s.profiles.CreateAdmin(ctx, created.ID)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("username", created.Username).Msg("profile creation failed, rolling back identity")
		if delErr := s.identities.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("identity_id", created.ID).Msg("compensating delete failed")
		}
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", input.Role).Msg("account created")
	s.record(created.Username, domain.AuditSignup, input.Role)

	return created, nil
}

// Login authenticates credentials first, then checks that the requested role
// has a matching profile. A credential failure is reported identically for
// unknown usernames and wrong passwords.
func (s *AccountService) Login(ctx context.Context, input ports.LoginInput) (*domain.Identity, domain.Role, error) {
	identity, err := s.identities.FindByUsername(ctx, input.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.RoleNone, domain.ErrInvalidCredentials
		}
		return nil, domain.RoleNone, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.RoleNone, domain.ErrInvalidCredentials
	}

	switch input.Role {
	case domain.RequestedRoleUser:
		ok, err := s.profiles.HasCustomer(ctx, identity.ID)
		if err != nil {
			return nil, domain.RoleNone, err
		}
		if !ok {
			return nil, domain.RoleNone, domain.ErrNotCustomer
		}
		s.record(identity.Username, domain.AuditLogin, string(domain.RoleCustomer))
		return identity, domain.RoleCustomer, nil
	case domain.RequestedRoleAdmin:
		ok, err := s.profiles.HasAdmin(ctx, identity.ID)
		if err != nil {
			return nil, domain.RoleNone, err
		}
		if !ok {
			return nil, domain.RoleNone, domain.ErrNotAdmin
		}
		s.record(identity.Username, domain.AuditLogin, string(domain.RoleAdmin))
		return identity, domain.RoleAdmin, nil
	}

	return nil, domain.RoleNone, domain.ErrInvalidRole
}

// RoleOf derives the role by existence lookups, customer before admin. An
// identity with neither profile resolves to RoleNone without error.
func (s *AccountService) RoleOf(ctx context.Context, identityID string) (domain.Role, error) {
	ok, err := s.profiles.HasCustomer(ctx, identityID)
	if err != nil {
		return domain.RoleNone, err
	}
	if ok {
		return domain.RoleCustomer, nil
	}

	ok, err = s.profiles.HasAdmin(ctx, identityID)
	if err != nil {
		return domain.RoleNone, err
	}
	if ok {
		return domain.RoleAdmin, nil
	}

	return domain.RoleNone, nil
}

func (s *AccountService) IsAdmin(ctx context.Context, identityID string) (bool, error) {
	return s.profiles.HasAdmin(ctx, identityID)
}

func (s *AccountService) RecordLogout(username string) {
	s.record(username, domain.AuditLogout, "")
}

func (s *AccountService) record(actor, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC().Unix(),
	})
}
