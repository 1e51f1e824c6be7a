package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"centavo/internal/domain/payment"
)

type PaymentRepository struct {
	db *DB
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, title, amount, is_income, is_recurring, frequency,
	due_date, is_paid, category, emoji, created_at`

func (r *PaymentRepository) Create(ctx context.Context, params payment.CreateParams) (*payment.ScheduledPayment, error) {
	query := `
		INSERT INTO scheduled_payments (title, amount, is_income, is_recurring, frequency, due_date, category, emoji)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns

	var p payment.ScheduledPayment
	err := r.db.QueryRowContext(
		ctx, query,
		params.Title, params.Amount, params.IsIncome, params.IsRecurring,
		params.Frequency, params.DueDate, params.Category, params.Emoji,
	).Scan(
		&p.ID, &p.Title, &p.Amount, &p.IsIncome, &p.IsRecurring, &p.Frequency,
		&p.DueDate, &p.IsPaid, &p.Category, &p.Emoji, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return &p, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*payment.ScheduledPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM scheduled_payments WHERE id = $1`

	var p payment.ScheduledPayment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Amount, &p.IsIncome, &p.IsRecurring, &p.Frequency,
		&p.DueDate, &p.IsPaid, &p.Category, &p.Emoji, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]*payment.ScheduledPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM scheduled_payments ORDER BY due_date, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.ScheduledPayment
	for rows.Next() {
		var p payment.ScheduledPayment
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Amount, &p.IsIncome, &p.IsRecurring, &p.Frequency,
			&p.DueDate, &p.IsPaid, &p.Category, &p.Emoji, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, id int64, params payment.UpdateParams) (*payment.ScheduledPayment, error) {
	sets := []string{}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Amount != nil {
		add("amount", *params.Amount)
	}
	if params.IsIncome != nil {
		add("is_income", *params.IsIncome)
	}
	if params.IsRecurring != nil {
		add("is_recurring", *params.IsRecurring)
	}
	if params.Frequency != nil {
		add("frequency", *params.Frequency)
	}
	if params.DueDate != nil {
		add("due_date", *params.DueDate)
	}
	if params.IsPaid != nil {
		add("is_paid", *params.IsPaid)
	}
	if params.Category != nil {
		add("category", *params.Category)
	}
	if params.Emoji != nil {
		add("emoji", *params.Emoji)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(
		`UPDATE scheduled_payments SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), idx, paymentColumns,
	)
	args = append(args, id)

	var p payment.ScheduledPayment
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Title, &p.Amount, &p.IsIncome, &p.IsRecurring, &p.Frequency,
		&p.DueDate, &p.IsPaid, &p.Category, &p.Emoji, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return &p, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM scheduled_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}
