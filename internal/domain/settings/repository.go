package settings

import "context"

// Repository defines the interface for user settings data access
type Repository interface {
	// Get returns the stored settings, or nil when none have been saved yet.
	Get(ctx context.Context) (*UserSettings, error)
	Upsert(ctx context.Context, params UpdateParams) (*UserSettings, error)
}
