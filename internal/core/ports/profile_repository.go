package ports

import "context"

// ProfileRepository manages the role marker records. Role membership is
// always an existence check against these collections, never a stored field.
type ProfileRepository interface {
	CreateCustomer(ctx context.Context, identityID string) error
	CreateAdmin(ctx context.Context, identityID string) error
	HasCustomer(ctx context.Context, identityID string) (bool, error)
	HasAdmin(ctx context.Context, identityID string) (bool, error)
}
