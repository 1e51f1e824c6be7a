package postgres

import (
	"context"
	"fmt"

	"centavo/internal/domain/notification"
)

type DeviceTokenRepository struct {
	db *DB
}

func NewDeviceTokenRepository(db *DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

func (r *DeviceTokenRepository) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	query := `
		INSERT INTO device_tokens (token, platform, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (token) DO UPDATE SET platform = EXCLUDED.platform, is_active = TRUE
		RETURNING id, token, platform, is_active, created_at`

	var t notification.DeviceToken
	err := r.db.QueryRowContext(ctx, query, params.Token, params.Platform).Scan(
		&t.ID, &t.Token, &t.Platform, &t.IsActive, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}

	return &t, nil
}

func (r *DeviceTokenRepository) ListActiveTokens(ctx context.Context) ([]*notification.DeviceToken, error) {
	query := `SELECT id, token, platform, is_active, created_at FROM device_tokens WHERE is_active ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.ID, &t.Token, &t.Platform, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, &t)
	}

	return tokens, rows.Err()
}

func (r *DeviceTokenRepository) DeactivateToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE device_tokens SET is_active = FALSE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}
	return nil
}
