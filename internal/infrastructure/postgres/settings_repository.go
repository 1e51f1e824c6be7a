package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"centavo/internal/domain/settings"
)

type SettingsRepository struct {
	db *DB
}

func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `monthly_budget_limit, category_budgets, alert_threshold_percent,
	currency, locale, theme, updated_at`

func (r *SettingsRepository) Get(ctx context.Context) (*settings.UserSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE id = 1`

	var (
		s       settings.UserSettings
		budgets []byte
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.MonthlyBudgetLimit, &budgets, &s.AlertThresholdPercent,
		&s.Currency, &s.Locale, &s.Theme, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := json.Unmarshal(budgets, &s.CategoryBudgets); err != nil {
		return nil, fmt.Errorf("failed to decode category budgets: %w", err)
	}

	return &s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, params settings.UpdateParams) (*settings.UserSettings, error) {
	// Ensure the singleton row exists, then apply only the provided fields.
	_, err := r.db.ExecContext(ctx, `INSERT INTO user_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure settings row: %w", err)
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if params.MonthlyBudgetLimit != nil {
		add("monthly_budget_limit", *params.MonthlyBudgetLimit)
	}
	if params.CategoryBudgets != nil {
		encoded, err := json.Marshal(params.CategoryBudgets)
		if err != nil {
			return nil, fmt.Errorf("failed to encode category budgets: %w", err)
		}
		add("category_budgets", encoded)
	}
	if params.AlertThresholdPercent != nil {
		add("alert_threshold_percent", *params.AlertThresholdPercent)
	}
	if params.Currency != nil {
		add("currency", *params.Currency)
	}
	if params.Locale != nil {
		add("locale", *params.Locale)
	}
	if params.Theme != nil {
		add("theme", *params.Theme)
	}

	query := fmt.Sprintf(`UPDATE user_settings SET %s WHERE id = 1`, strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return r.Get(ctx)
}
