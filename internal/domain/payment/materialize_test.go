package payment

import (
	"context"
	"testing"
	"time"

	"centavo/internal/domain/transaction"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMaterializerRealizesDueOccurrences(t *testing.T) {
	ctx := context.Background()
	today := date(2025, time.June, 10)

	p := &ScheduledPayment{ID: 1, Title: "Gym", Amount: 45, IsRecurring: true, DueDate: date(2025, time.June, 8)}
	rule := &RecurringRule{ID: 5, ScheduledPaymentID: 1, Type: RecurrenceDaily, Interval: 1, IsActive: true}

	var created []time.Time
	var bookkeeping []BookkeepingParams

	payments := &MockRepository{
		ListFunc: func(ctx context.Context) ([]*ScheduledPayment, error) {
			return []*ScheduledPayment{p}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			return []*RecurringRule{rule}, nil
		},
		UpdateBookkeepingFunc: func(ctx context.Context, id int64, params BookkeepingParams) error {
			bookkeeping = append(bookkeeping, params)
			return nil
		},
	}
	txns := &MockTransactionRepository{
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			created = append(created, params.Date)
			return &transaction.Transaction{ID: int64(len(created))}, nil
		},
	}

	m := NewMaterializer(payments, rules, txns, fixedNow(today))
	result, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// June 8, 9, 10 are due.
	if result.TransactionsCreated != 3 {
		t.Errorf("created %d transactions, want 3", result.TransactionsCreated)
	}
	if len(bookkeeping) != 3 {
		t.Fatalf("bookkeeping updated %d times, want 3", len(bookkeeping))
	}

	last := bookkeeping[len(bookkeeping)-1]
	if last.LastGenerated == nil || !last.LastGenerated.Equal(today) {
		t.Error("lastGenerated not advanced to today")
	}
	if last.CurrentOccurrences == nil || *last.CurrentOccurrences != 3 {
		t.Error("currentOccurrences not incremented per realized occurrence")
	}
}

func TestMaterializerResumesFromLastGenerated(t *testing.T) {
	ctx := context.Background()
	today := date(2025, time.June, 10)
	lastGen := date(2025, time.June, 9)

	p := &ScheduledPayment{ID: 1, Title: "Gym", Amount: 45, IsRecurring: true, DueDate: date(2025, time.June, 1)}
	rule := &RecurringRule{ID: 5, Type: RecurrenceDaily, Interval: 1, IsActive: true, LastGenerated: &lastGen, CurrentOccurrences: 9}

	createCalls := 0
	payments := &MockRepository{
		ListFunc: func(ctx context.Context) ([]*ScheduledPayment, error) {
			return []*ScheduledPayment{p}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			return []*RecurringRule{rule}, nil
		},
	}
	txns := &MockTransactionRepository{
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			createCalls++
			if !params.Date.Equal(today) {
				t.Errorf("realized %v, want only today", params.Date)
			}
			return &transaction.Transaction{ID: 1}, nil
		},
	}

	m := NewMaterializer(payments, rules, txns, fixedNow(today))
	if _, err := m.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if createCalls != 1 {
		t.Errorf("created %d transactions, want 1 (only the day after lastGenerated)", createCalls)
	}
}

func TestMaterializerSkipsExistingTransactions(t *testing.T) {
	ctx := context.Background()
	today := date(2025, time.June, 8)

	p := &ScheduledPayment{ID: 1, Title: "Gym", Amount: 45, IsRecurring: true, DueDate: today}
	rule := &RecurringRule{ID: 5, Type: RecurrenceDaily, Interval: 1, IsActive: true}

	createCalls := 0
	payments := &MockRepository{
		ListFunc: func(ctx context.Context) ([]*ScheduledPayment, error) {
			return []*ScheduledPayment{p}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			return []*RecurringRule{rule}, nil
		},
	}
	txns := &MockTransactionRepository{
		FindByPaymentAndDateFunc: func(ctx context.Context, paymentID int64, d time.Time) (*transaction.Transaction, error) {
			return &transaction.Transaction{ID: 42, Date: d}, nil
		},
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			createCalls++
			return nil, nil
		},
	}

	m := NewMaterializer(payments, rules, txns, fixedNow(today))
	result, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if createCalls != 0 {
		t.Errorf("Create called %d times for already-realized dates, want 0", createCalls)
	}
	if result.TransactionsCreated != 0 {
		t.Errorf("reported %d created, want 0", result.TransactionsCreated)
	}
}

func TestMaterializerFrequencyFallback(t *testing.T) {
	ctx := context.Background()
	today := date(2025, time.June, 10)

	// Legacy shape: recurring with a frequency label but no rule rows.
	p := &ScheduledPayment{ID: 1, Title: "Gym", Amount: 45, IsRecurring: true, Frequency: RecurrenceDaily, DueDate: date(2025, time.June, 8)}

	var created []time.Time
	bookkeepingCalls := 0

	payments := &MockRepository{
		ListFunc: func(ctx context.Context) ([]*ScheduledPayment, error) {
			return []*ScheduledPayment{p}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			return nil, nil
		},
		UpdateBookkeepingFunc: func(ctx context.Context, id int64, params BookkeepingParams) error {
			bookkeepingCalls++
			return nil
		},
	}
	txns := &MockTransactionRepository{
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			created = append(created, params.Date)
			return &transaction.Transaction{ID: int64(len(created))}, nil
		},
	}

	m := NewMaterializer(payments, rules, txns, fixedNow(today))
	result, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// June 8, 9, 10 are due even without an explicit rule.
	if result.TransactionsCreated != 3 {
		t.Errorf("created %d transactions, want 3", result.TransactionsCreated)
	}
	if bookkeepingCalls != 0 {
		t.Errorf("bookkeeping updated %d times, want 0 without a rule row", bookkeepingCalls)
	}
}

func TestMaterializerFrequencyFallbackIdempotent(t *testing.T) {
	ctx := context.Background()
	today := date(2025, time.June, 10)

	p := &ScheduledPayment{ID: 1, Title: "Gym", Amount: 45, IsRecurring: true, Frequency: RecurrenceDaily, DueDate: date(2025, time.June, 8)}

	realized := map[time.Time]*transaction.Transaction{}
	createCalls := 0

	payments := &MockRepository{
		ListFunc: func(ctx context.Context) ([]*ScheduledPayment, error) {
			return []*ScheduledPayment{p}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			return nil, nil
		},
	}
	txns := &MockTransactionRepository{
		FindByPaymentAndDateFunc: func(ctx context.Context, paymentID int64, d time.Time) (*transaction.Transaction, error) {
			return realized[d], nil
		},
		CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
			createCalls++
			txn := &transaction.Transaction{ID: int64(createCalls), Date: params.Date}
			realized[params.Date] = txn
			return txn, nil
		},
	}

	m := NewMaterializer(payments, rules, txns, fixedNow(today))
	if _, err := m.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Run(ctx); err != nil {
		t.Fatalf("unexpected error on rerun: %v", err)
	}

	if createCalls != 3 {
		t.Errorf("created %d transactions across two runs, want 3", createCalls)
	}
}

func TestMaterializerIgnoresNonRecurring(t *testing.T) {
	ctx := context.Background()

	rulesQueried := false
	payments := &MockRepository{
		ListFunc: func(ctx context.Context) ([]*ScheduledPayment, error) {
			return []*ScheduledPayment{{ID: 1, Title: "One-off", DueDate: date(2025, time.June, 1)}}, nil
		},
	}
	rules := &MockRuleRepository{
		ListByPaymentIDFunc: func(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
			rulesQueried = true
			return nil, nil
		},
	}

	m := NewMaterializer(payments, rules, &MockTransactionRepository{}, fixedNow(date(2025, time.June, 10)))
	result, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rulesQueried {
		t.Error("rules queried for a non-recurring payment")
	}
	if result.PaymentsChecked != 0 {
		t.Errorf("checked %d payments, want 0", result.PaymentsChecked)
	}
}
