package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centavo/internal/domain/pin"
)

type PinRepository struct {
	db *DB
}

func NewPinRepository(db *DB) *PinRepository {
	return &PinRepository{db: db}
}

func (r *PinRepository) Get(ctx context.Context) (*pin.Credential, error) {
	query := `SELECT hash, failed_attempts, locked_until, updated_at FROM pin_credentials WHERE id = 1`

	var (
		cred        pin.Credential
		lockedUntil sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&cred.Hash, &cred.FailedAttempts, &lockedUntil, &cred.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pin credential: %w", err)
	}

	if lockedUntil.Valid {
		until := lockedUntil.Time
		cred.LockedUntil = &until
	}

	return &cred, nil
}

func (r *PinRepository) Save(ctx context.Context, cred *pin.Credential) error {
	query := `
		INSERT INTO pin_credentials (id, hash, failed_attempts, locked_until, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			hash = EXCLUDED.hash,
			failed_attempts = EXCLUDED.failed_attempts,
			locked_until = EXCLUDED.locked_until,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, cred.Hash, cred.FailedAttempts, cred.LockedUntil, cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save pin credential: %w", err)
	}
	return nil
}
