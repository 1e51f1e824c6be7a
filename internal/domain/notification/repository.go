package notification

import "context"

// Repository defines the interface for device token data access
type Repository interface {
	UpsertDeviceToken(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error)
	ListActiveTokens(ctx context.Context) ([]*DeviceToken, error)
	DeactivateToken(ctx context.Context, token string) error
}
