package statistics

import (
	"context"
	"testing"
	"time"

	"centavo/internal/domain/payment"
	"centavo/internal/domain/settings"
	"centavo/internal/domain/transaction"
)

// MockTransactionRepository is a mock implementation of transaction.Repository
type MockTransactionRepository struct {
	ListByDateRangeFunc func(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error)
}

func (m *MockTransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	return nil, nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return nil, nil
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (m *MockTransactionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, start, end)
	}
	return nil, nil
}

func (m *MockTransactionRepository) FindByPaymentAndDate(ctx context.Context, paymentID int64, date time.Time) (*transaction.Transaction, error) {
	return nil, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	return nil, nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	return nil
}

type mockOccurrences struct {
	occs []payment.PlannedOccurrence
}

func (m mockOccurrences) Occurrences(ctx context.Context, start, end time.Time) ([]payment.PlannedOccurrence, error) {
	return m.occs, nil
}

type mockBalance struct {
	balance float64
}

func (m mockBalance) GetBalance(ctx context.Context) (float64, error) {
	return m.balance, nil
}

type mockSettings struct {
	stored *settings.UserSettings
}

func (m mockSettings) Get(ctx context.Context) (*settings.UserSettings, error) {
	return m.stored, nil
}

func (m mockSettings) Upsert(ctx context.Context, params settings.UpdateParams) (*settings.UserSettings, error) {
	return m.stored, nil
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestForPeriodMonthlyTotals(t *testing.T) {
	ctx := context.Background()
	now := day(2025, time.June, 15)

	txns := &MockTransactionRepository{
		ListByDateRangeFunc: func(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
			// The month-comparison windows query outside the period too;
			// return data only for the selected period.
			if start.Equal(day(2025, time.June, 1)) && end.Equal(day(2025, time.June, 30)) {
				return []*transaction.Transaction{
					{Amount: 3000, Type: transaction.TypeIncome, Category: "Salary", Date: day(2025, time.June, 2)},  // Monday
					{Amount: 500, Type: transaction.TypeExpense, Category: "Rent", Date: day(2025, time.June, 3)},    // Tuesday
					{Amount: 200, Type: transaction.TypeExpense, Category: "Grocery", Date: day(2025, time.June, 8)}, // Sunday
				}, nil
			}
			return nil, nil
		},
	}

	planned := mockOccurrences{occs: []payment.PlannedOccurrence{
		{Payment: &payment.ScheduledPayment{Amount: 15.99}, Date: day(2025, time.June, 5)},
	}}

	svc := NewService(txns, planned, mockBalance{balance: 2300}, mockSettings{}, fixedNow(now))

	data, err := svc.ForPeriod(ctx, PeriodMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.TotalIncome != 3000 {
		t.Errorf("totalIncome = %.2f, want 3000", data.TotalIncome)
	}
	if data.TotalExpense != 700 {
		t.Errorf("totalExpense = %.2f, want 700", data.TotalExpense)
	}
	if data.PlannedExpense != 15.99 {
		t.Errorf("plannedExpense = %.2f, want 15.99", data.PlannedExpense)
	}
	if data.Balance != 2300 {
		t.Errorf("balance = %.2f, want 2300", data.Balance)
	}

	// Monday-first weekday buckets.
	if data.WeekdayIncome[0] != 3000 {
		t.Errorf("Monday income bucket = %.2f, want 3000", data.WeekdayIncome[0])
	}
	if data.WeekdayExpense[1] != 500 {
		t.Errorf("Tuesday expense bucket = %.2f, want 500", data.WeekdayExpense[1])
	}
	if data.WeekdayExpense[6] != 200 {
		t.Errorf("Sunday expense bucket = %.2f, want 200", data.WeekdayExpense[6])
	}

	// Categories sorted by amount descending.
	if len(data.CategoryExpenses) != 2 {
		t.Fatalf("got %d categories, want 2", len(data.CategoryExpenses))
	}
	if data.CategoryExpenses[0].Category != "Rent" || data.CategoryExpenses[1].Category != "Grocery" {
		t.Errorf("categories %v not sorted by amount", data.CategoryExpenses)
	}
}

func TestForPeriodInvalidPeriod(t *testing.T) {
	svc := NewService(&MockTransactionRepository{}, mockOccurrences{}, mockBalance{}, mockSettings{}, fixedNow(day(2025, time.June, 15)))

	if _, err := svc.ForPeriod(context.Background(), "DAILY"); err != ErrInvalidPeriod {
		t.Errorf("got %v, want ErrInvalidPeriod", err)
	}
}

func TestPeriodWindow(t *testing.T) {
	now := day(2025, time.June, 11) // Wednesday

	tests := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{PeriodWeekly, day(2025, time.June, 9), day(2025, time.June, 15)},
		{PeriodMonthly, day(2025, time.June, 1), day(2025, time.June, 30)},
		{PeriodYearly, day(2025, time.January, 1), day(2025, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end := periodWindow(tt.period, now)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("got [%v, %v], want [%v, %v]", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestWeekdayIndexMondayFirst(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{day(2025, time.June, 9), 0},  // Monday
		{day(2025, time.June, 13), 4}, // Friday
		{day(2025, time.June, 15), 6}, // Sunday
	}

	for _, tt := range tests {
		if got := weekdayIndex(tt.date); got != tt.want {
			t.Errorf("weekdayIndex(%v) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
