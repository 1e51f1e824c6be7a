package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"centavo/internal/domain/transaction"
)

func TestMarkPaidNonRecurring(t *testing.T) {
	ctx := context.Background()
	payDate := date(2025, time.March, 10)

	var flagged bool
	var created *transaction.CreateParams

	payments := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ScheduledPayment, error) {
			return &ScheduledPayment{ID: id, Title: "Dentist", Amount: 120, Category: "Health", DueDate: payDate}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error) {
			if params.IsPaid != nil && *params.IsPaid {
				flagged = true
			}
			return &ScheduledPayment{ID: id, IsPaid: true}, nil
		},
	}
	txns := &MockTransactionRepository{
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			created = &params
			return &transaction.Transaction{ID: 99, Title: params.Title, Amount: params.Amount, Type: params.Type, Date: params.Date}, nil
		},
	}

	lc := NewLifecycle(payments, &MockRuleRepository{}, txns)

	txn, err := lc.MarkPaid(ctx, 7, payDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flagged {
		t.Error("paid flag was not set on the payment")
	}
	if created == nil {
		t.Fatal("no transaction was created")
	}
	if created.Type != transaction.TypeExpense {
		t.Errorf("got type %s, want EXPENSE", created.Type)
	}
	if created.ScheduledPaymentID == nil || *created.ScheduledPaymentID != 7 {
		t.Error("transaction does not reference the payment")
	}
	if txn.ID != 99 {
		t.Errorf("got transaction id %d, want 99", txn.ID)
	}
}

func TestMarkPaidIdempotent(t *testing.T) {
	ctx := context.Background()
	payDate := date(2025, time.March, 10)
	existing := &transaction.Transaction{ID: 42, Title: "Netflix", Date: payDate}

	createCalls := 0
	payments := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ScheduledPayment, error) {
			return &ScheduledPayment{ID: id, Title: "Netflix", Amount: 15.99, IsRecurring: true}, nil
		},
	}
	txns := &MockTransactionRepository{
		FindByPaymentAndDateFunc: func(ctx context.Context, paymentID int64, d time.Time) (*transaction.Transaction, error) {
			return existing, nil
		},
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			createCalls++
			return nil, nil
		},
	}

	lc := NewLifecycle(payments, &MockRuleRepository{}, txns)

	txn, err := lc.MarkPaid(ctx, 1, payDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if createCalls != 0 {
		t.Errorf("Create called %d times for an already-realized date, want 0", createCalls)
	}
	if txn.ID != 42 {
		t.Errorf("got transaction %d, want the existing one", txn.ID)
	}
}

func TestMarkPaidRecurringAdvancesRules(t *testing.T) {
	ctx := context.Background()
	payDate := date(2025, time.March, 10)

	var advanced []int64
	payments := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ScheduledPayment, error) {
			return &ScheduledPayment{ID: id, Title: "Gym", Amount: 45, IsRecurring: true}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			return []*RecurringRule{{ID: 11, IsActive: true}, {ID: 12, IsActive: true}}, nil
		},
		UpdateBookkeepingFunc: func(ctx context.Context, id int64, params BookkeepingParams) error {
			if params.CurrentOccurrences != nil {
				t.Error("mark-as-paid must not touch the occurrence counter")
			}
			if params.LastGenerated == nil || !params.LastGenerated.Equal(payDate) {
				t.Errorf("rule %d lastGenerated not advanced to the paid date", id)
			}
			advanced = append(advanced, id)
			return nil
		},
	}
	txns := &MockTransactionRepository{
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			return &transaction.Transaction{ID: 1}, nil
		},
	}

	lc := NewLifecycle(payments, rules, txns)

	if _, err := lc.MarkPaid(ctx, 3, payDate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(advanced) != 2 {
		t.Errorf("advanced %d rules, want 2", len(advanced))
	}
}

func TestMarkPaidErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		paymentID int64
		payments  *MockRepository
		wantErr   error
	}{
		{
			name:      "UnpersistedID",
			paymentID: 0,
			payments:  &MockRepository{},
			wantErr:   ErrNotPersisted,
		},
		{
			name:      "NotFound",
			paymentID: 5,
			payments: &MockRepository{
				GetByIDFunc: func(ctx context.Context, id int64) (*ScheduledPayment, error) {
					return nil, nil
				},
			},
			wantErr: ErrPaymentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := NewLifecycle(tt.payments, &MockRuleRepository{}, &MockTransactionRepository{})
			_, err := lc.MarkPaid(ctx, tt.paymentID, date(2025, time.March, 1))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMarkUnpaid(t *testing.T) {
	ctx := context.Background()

	var cleared bool
	payments := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ScheduledPayment, error) {
			return &ScheduledPayment{ID: id, IsPaid: true}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error) {
			if params.IsPaid != nil && !*params.IsPaid {
				cleared = true
			}
			return &ScheduledPayment{ID: id}, nil
		},
	}

	lc := NewLifecycle(payments, &MockRuleRepository{}, &MockTransactionRepository{})

	if err := lc.MarkUnpaid(ctx, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared {
		t.Error("paid flag was not cleared")
	}
}

func TestMarkUnpaidRecurringNoop(t *testing.T) {
	ctx := context.Background()

	payments := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ScheduledPayment, error) {
			return &ScheduledPayment{ID: id, IsRecurring: true}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error) {
			t.Error("recurring payments must not be updated by MarkUnpaid")
			return nil, nil
		},
	}

	lc := NewLifecycle(payments, &MockRuleRepository{}, &MockTransactionRepository{})

	if err := lc.MarkUnpaid(ctx, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
