package pin

import "context"

// Repository defines the interface for PIN credential data access
type Repository interface {
	// Get returns the stored credential, or nil when no PIN has been set.
	Get(ctx context.Context) (*Credential, error)
	Save(ctx context.Context, cred *Credential) error
}
