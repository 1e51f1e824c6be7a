package payment

import (
	"context"
	"time"

	"centavo/internal/domain/transaction"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc  func(ctx context.Context, params CreateParams) (*ScheduledPayment, error)
	GetByIDFunc func(ctx context.Context, id int64) (*ScheduledPayment, error)
	ListFunc    func(ctx context.Context) ([]*ScheduledPayment, error)
	UpdateFunc  func(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*ScheduledPayment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*ScheduledPayment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*ScheduledPayment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockRuleRepository is a mock implementation of RuleRepository interface
type MockRuleRepository struct {
	CreateFunc            func(ctx context.Context, paymentID int64, params RuleParams) (*RecurringRule, error)
	ListByPaymentIDFunc   func(ctx context.Context, paymentID int64) ([]*RecurringRule, error)
	UpdateBookkeepingFunc func(ctx context.Context, id int64, params BookkeepingParams) error
	SetActiveFunc         func(ctx context.Context, id int64, active bool) error
	DeleteFunc            func(ctx context.Context, id int64) error
	DeleteByPaymentIDFunc func(ctx context.Context, paymentID int64) error
}

func (m *MockRuleRepository) Create(ctx context.Context, paymentID int64, params RuleParams) (*RecurringRule, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, paymentID, params)
	}
	return nil, nil
}

func (m *MockRuleRepository) ListByPaymentID(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
	if m.ListByPaymentIDFunc != nil {
		return m.ListByPaymentIDFunc(ctx, paymentID)
	}
	return nil, nil
}

func (m *MockRuleRepository) UpdateBookkeeping(ctx context.Context, id int64, params BookkeepingParams) error {
	if m.UpdateBookkeepingFunc != nil {
		return m.UpdateBookkeepingFunc(ctx, id, params)
	}
	return nil
}

func (m *MockRuleRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *MockRuleRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRuleRepository) DeleteByPaymentID(ctx context.Context, paymentID int64) error {
	if m.DeleteByPaymentIDFunc != nil {
		return m.DeleteByPaymentIDFunc(ctx, paymentID)
	}
	return nil
}

// MockTransactionRepository is a mock implementation of transaction.Repository
type MockTransactionRepository struct {
	CreateFunc               func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	GetByIDFunc              func(ctx context.Context, id int64) (*transaction.Transaction, error)
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*transaction.Transaction, error)
	ListByDateRangeFunc      func(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error)
	FindByPaymentAndDateFunc func(ctx context.Context, paymentID int64, date time.Time) (*transaction.Transaction, error)
	UpdateFunc               func(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc               func(ctx context.Context, id int64) error
}

func (m *MockTransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockTransactionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, start, end)
	}
	return nil, nil
}

func (m *MockTransactionRepository) FindByPaymentAndDate(ctx context.Context, paymentID int64, date time.Time) (*transaction.Transaction, error) {
	if m.FindByPaymentAndDateFunc != nil {
		return m.FindByPaymentAndDateFunc(ctx, paymentID, date)
	}
	return nil, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
