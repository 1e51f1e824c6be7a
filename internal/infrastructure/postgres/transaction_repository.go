package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"centavo/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, title, amount, tx_type, category, emoji, tx_date,
	scheduled_payment_id, created_at`

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (title, amount, tx_type, category, emoji, tx_date, scheduled_payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + transactionColumns

	row := r.db.QueryRowContext(
		ctx, query,
		params.Title, params.Amount, params.Type, params.Category,
		params.Emoji, params.Date, params.ScheduledPaymentID,
	)

	txn, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY tx_date DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tx_date >= $1 AND tx_date <= $2
		ORDER BY tx_date, id`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by range: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) FindByPaymentAndDate(ctx context.Context, paymentID int64, date time.Time) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE scheduled_payment_id = $1 AND tx_date = $2
		LIMIT 1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, paymentID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by payment and date: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
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
	if params.Type != nil {
		add("tx_type", *params.Type)
	}
	if params.Category != nil {
		add("category", *params.Category)
	}
	if params.Emoji != nil {
		add("emoji", *params.Emoji)
	}
	if params.Date != nil {
		add("tx_date", *params.Date)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(
		`UPDATE transactions SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), idx, transactionColumns,
	)
	args = append(args, id)

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var (
		txn       transaction.Transaction
		paymentID sql.NullInt64
	)

	err := row.Scan(
		&txn.ID, &txn.Title, &txn.Amount, &txn.Type, &txn.Category,
		&txn.Emoji, &txn.Date, &paymentID, &txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentID.Valid {
		id := paymentID.Int64
		txn.ScheduledPaymentID = &id
	}

	return &txn, nil
}

func scanTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var txns []*transaction.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
