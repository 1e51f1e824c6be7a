package transaction

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc               func(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByIDFunc              func(ctx context.Context, id int64) (*Transaction, error)
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*Transaction, error)
	ListByDateRangeFunc      func(ctx context.Context, start, end time.Time) ([]*Transaction, error)
	FindByPaymentAndDateFunc func(ctx context.Context, paymentID int64, date time.Time) (*Transaction, error)
	UpdateFunc               func(ctx context.Context, id int64, params UpdateParams) (*Transaction, error)
	DeleteFunc               func(ctx context.Context, id int64) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]*Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*Transaction, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, start, end)
	}
	return nil, nil
}

func (m *MockRepository) FindByPaymentAndDate(ctx context.Context, paymentID int64, date time.Time) (*Transaction, error) {
	if m.FindByPaymentAndDateFunc != nil {
		return m.FindByPaymentAndDateFunc(ctx, paymentID, date)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id int64, params UpdateParams) (*Transaction, error) {
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

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  CreateParams
		wantErr bool
	}{
		{
			name:   "Success",
			params: CreateParams{Title: "Salary", Amount: 3000, Type: TypeIncome, Date: day},
		},
		{
			name:    "MissingTitle",
			params:  CreateParams{Amount: 10, Type: TypeExpense, Date: day},
			wantErr: true,
		},
		{
			name:    "ZeroAmount",
			params:  CreateParams{Title: "X", Amount: 0, Type: TypeExpense, Date: day},
			wantErr: true,
		},
		{
			name:    "InvalidType",
			params:  CreateParams{Title: "X", Amount: 10, Type: "TRANSFER", Date: day},
			wantErr: true,
		},
		{
			name:    "MissingDate",
			params:  CreateParams{Title: "X", Amount: 10, Type: TypeExpense},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{
				CreateFunc: func(ctx context.Context, params CreateParams) (*Transaction, error) {
					return &Transaction{ID: 1, Title: params.Title}, nil
				},
			}
			svc := NewService(repo)

			_, err := svc.CreateTransaction(ctx, tt.params)
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	if _, err := svc.GetTransaction(ctx, 5); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("got %v, want ErrTransactionNotFound", err)
	}
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	repo := &MockRepository{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*Transaction, error) {
			if offset > 0 {
				return nil, nil
			}
			return []*Transaction{
				{ID: 1, Amount: 1000, Type: TypeIncome, Date: day},
				{ID: 2, Amount: 500, Type: TypeExpense, Date: day},
			}, nil
		},
	}
	svc := NewService(repo)

	balance, err := svc.GetBalance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 500 {
		t.Errorf("got balance %.2f, want 500.00", balance)
	}
}

func TestGetBalancePagesThroughAll(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Two full pages then a short one.
	repo := &MockRepository{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*Transaction, error) {
			if offset >= 1000 {
				return []*Transaction{{ID: 9999, Amount: 1, Type: TypeIncome, Date: day}}, nil
			}
			page := make([]*Transaction, limit)
			for i := range page {
				page[i] = &Transaction{ID: int64(offset + i), Amount: 1, Type: TypeIncome, Date: day}
			}
			return page, nil
		},
	}
	svc := NewService(repo)

	balance, err := svc.GetBalance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 1001 {
		t.Errorf("got balance %.2f, want 1001.00", balance)
	}
}

func TestListTransactionsClampsPagination(t *testing.T) {
	ctx := context.Background()

	var gotLimit, gotOffset int
	repo := &MockRepository{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*Transaction, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := NewService(repo)

	if _, err := svc.ListTransactions(ctx, -1, -10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 || gotOffset != 0 {
		t.Errorf("got limit=%d offset=%d, want clamped to 50/0", gotLimit, gotOffset)
	}
}
