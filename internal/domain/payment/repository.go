package payment

import (
	"context"
)

// Repository defines the interface for scheduled payment data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*ScheduledPayment, error)
	GetByID(ctx context.Context, id int64) (*ScheduledPayment, error)
	List(ctx context.Context) ([]*ScheduledPayment, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error)
	Delete(ctx context.Context, id int64) error
}

// RuleRepository defines the interface for recurring rule data access
type RuleRepository interface {
	Create(ctx context.Context, paymentID int64, params RuleParams) (*RecurringRule, error)
	ListByPaymentID(ctx context.Context, paymentID int64) ([]*RecurringRule, error)
	UpdateBookkeeping(ctx context.Context, id int64, params BookkeepingParams) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	DeleteByPaymentID(ctx context.Context, paymentID int64) error
}
