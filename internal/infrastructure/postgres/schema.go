package postgres

import (
	"context"
	"fmt"
)

// schema creates the tables on first run. Statements are idempotent so
// startup can apply them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS scheduled_payments (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		is_income BOOLEAN NOT NULL DEFAULT FALSE,
		is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
		frequency TEXT NOT NULL DEFAULT '',
		due_date DATE NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		category TEXT NOT NULL DEFAULT '',
		emoji TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS recurring_rules (
		id BIGSERIAL PRIMARY KEY,
		scheduled_payment_id BIGINT NOT NULL REFERENCES scheduled_payments(id),
		recurrence_type TEXT NOT NULL,
		interval_units INTEGER NOT NULL DEFAULT 1,
		day_of_month INTEGER,
		days_of_week TEXT,
		end_date DATE,
		max_occurrences INTEGER,
		current_occurrences INTEGER NOT NULL DEFAULT 0,
		last_generated DATE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recurring_rules_payment
		ON recurring_rules(scheduled_payment_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		tx_type TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		emoji TEXT NOT NULL DEFAULT '',
		tx_date DATE NOT NULL,
		scheduled_payment_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_payment_date
		ON transactions(scheduled_payment_id, tx_date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date)`,
	`CREATE TABLE IF NOT EXISTS user_settings (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		monthly_budget_limit DOUBLE PRECISION NOT NULL DEFAULT 0,
		category_budgets JSONB NOT NULL DEFAULT '{}',
		alert_threshold_percent DOUBLE PRECISION NOT NULL DEFAULT 80,
		currency TEXT NOT NULL DEFAULT 'USD',
		locale TEXT NOT NULL DEFAULT 'en',
		theme TEXT NOT NULL DEFAULT 'system',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pin_credentials (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		hash TEXT NOT NULL,
		failed_attempts INTEGER NOT NULL DEFAULT 0,
		locked_until TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS device_tokens (
		id BIGSERIAL PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		platform TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Change feed for the occurrence aggregator: any write to
	// scheduled_payments or recurring_rules notifies listeners.
	`CREATE OR REPLACE FUNCTION notify_payments_changed() RETURNS trigger AS $$
	BEGIN
		PERFORM pg_notify('payments_changed', TG_TABLE_NAME);
		RETURN NULL;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS trg_payments_changed ON scheduled_payments`,
	`CREATE TRIGGER trg_payments_changed
		AFTER INSERT OR UPDATE OR DELETE ON scheduled_payments
		FOR EACH STATEMENT EXECUTE FUNCTION notify_payments_changed()`,
	`DROP TRIGGER IF EXISTS trg_rules_changed ON recurring_rules`,
	`CREATE TRIGGER trg_rules_changed
		AFTER INSERT OR UPDATE OR DELETE ON recurring_rules
		FOR EACH STATEMENT EXECUTE FUNCTION notify_payments_changed()`,
}

// InitSchema applies the schema statements
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
