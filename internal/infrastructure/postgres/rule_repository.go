package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"centavo/internal/domain/payment"
)

type RuleRepository struct {
	db *DB
}

func NewRuleRepository(db *DB) *RuleRepository {
	return &RuleRepository{db: db}
}

const ruleColumns = `id, scheduled_payment_id, recurrence_type, interval_units,
	day_of_month, days_of_week, end_date, max_occurrences, current_occurrences,
	last_generated, is_active`

func (r *RuleRepository) Create(ctx context.Context, paymentID int64, params payment.RuleParams) (*payment.RecurringRule, error) {
	query := `
		INSERT INTO recurring_rules (scheduled_payment_id, recurrence_type, interval_units,
			day_of_month, days_of_week, end_date, max_occurrences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + ruleColumns

	row := r.db.QueryRowContext(
		ctx, query,
		paymentID, params.Type, params.Interval,
		params.DayOfMonth, encodeWeekdays(params.DaysOfWeek), params.EndDate, params.MaxOccurrences,
	)

	rule, err := scanRule(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}
	return rule, nil
}

func (r *RuleRepository) ListByPaymentID(ctx context.Context, paymentID int64) ([]*payment.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE scheduled_payment_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var rules []*payment.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *RuleRepository) UpdateBookkeeping(ctx context.Context, id int64, params payment.BookkeepingParams) error {
	sets := []string{}
	args := []any{}
	idx := 1

	if params.LastGenerated != nil {
		sets = append(sets, fmt.Sprintf("last_generated = $%d", idx))
		args = append(args, *params.LastGenerated)
		idx++
	}
	if params.CurrentOccurrences != nil {
		sets = append(sets, fmt.Sprintf("current_occurrences = $%d", idx))
		args = append(args, *params.CurrentOccurrences)
		idx++
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE recurring_rules SET %s WHERE id = $%d`, strings.Join(sets, ", "), idx)
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update rule bookkeeping: %w", err)
	}
	return nil
}

func (r *RuleRepository) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE recurring_rules SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set rule active state: %w", err)
	}
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recurring_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return nil
}

func (r *RuleRepository) DeleteByPaymentID(ctx context.Context, paymentID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recurring_rules WHERE scheduled_payment_id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete rules for payment: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*payment.RecurringRule, error) {
	var (
		rule          payment.RecurringRule
		dayOfMonth    sql.NullInt64
		daysOfWeek    sql.NullString
		endDate       sql.NullTime
		maxOccurrence sql.NullInt64
		lastGenerated sql.NullTime
	)

	err := row.Scan(
		&rule.ID, &rule.ScheduledPaymentID, &rule.Type, &rule.Interval,
		&dayOfMonth, &daysOfWeek, &endDate, &maxOccurrence, &rule.CurrentOccurrences,
		&lastGenerated, &rule.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if dayOfMonth.Valid {
		day := int(dayOfMonth.Int64)
		rule.DayOfMonth = &day
	}
	if daysOfWeek.Valid {
		rule.DaysOfWeek = decodeWeekdays(daysOfWeek.String)
	}
	if endDate.Valid {
		end := endDate.Time
		rule.EndDate = &end
	}
	if maxOccurrence.Valid {
		max := int(maxOccurrence.Int64)
		rule.MaxOccurrences = &max
	}
	if lastGenerated.Valid {
		last := lastGenerated.Time
		rule.LastGenerated = &last
	}

	return &rule, nil
}

// encodeWeekdays stores weekday sets as a comma-separated list of
// time.Weekday values. NULL means no weekday anchors.
func encodeWeekdays(days []time.Weekday) *string {
	if len(days) == 0 {
		return nil
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	s := strings.Join(parts, ",")
	return &s
}

func decodeWeekdays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}
