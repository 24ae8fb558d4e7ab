package ports

import (
	"context"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

// IdentityRepository defines persistence for base identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Delete removes an identity by id. Used as the compensating action when
	// profile creation fails after the identity was inserted.
	Delete(ctx context.Context, id string) error
}
