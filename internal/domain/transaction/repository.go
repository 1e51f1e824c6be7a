package transaction

import (
	"context"
	"time"
)

// Repository defines the interface for transaction data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*Transaction, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*Transaction, error)
	// FindByPaymentAndDate performs the idempotency lookup backing the
	// at-most-one-transaction-per-(payment, date) invariant. Returns nil
	// when no match exists.
	FindByPaymentAndDate(ctx context.Context, paymentID int64, date time.Time) (*Transaction, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}
