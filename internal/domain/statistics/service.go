package statistics

import (
	"context"
	"sort"
	"time"

	"centavo/internal/domain/payment"
	"centavo/internal/domain/settings"
	"centavo/internal/domain/transaction"
)

// OccurrenceSource supplies planned occurrences for a window. Satisfied by
// the payment service.
type OccurrenceSource interface {
	Occurrences(ctx context.Context, start, end time.Time) ([]payment.PlannedOccurrence, error)
}

// BalanceSource supplies the running balance across all transactions.
// Satisfied by the transaction service.
type BalanceSource interface {
	GetBalance(ctx context.Context) (float64, error)
}

// Service aggregates transactions and planned occurrences into period
// statistics and the financial health score.
type Service struct {
	txns     transaction.Repository
	planned  OccurrenceSource
	balance  BalanceSource
	settings settings.Repository
	now      func() time.Time
}

// NewService creates a new statistics service. now is injected so periods
// can be pinned to a fixed clock in tests.
func NewService(txns transaction.Repository, planned OccurrenceSource, balance BalanceSource, settingsRepo settings.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{txns: txns, planned: planned, balance: balance, settings: settingsRepo, now: now}
}

// ForPeriod computes the full statistics aggregate for the selected period
func (s *Service) ForPeriod(ctx context.Context, period string) (*StatisticsData, error) {
	if !IsValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}

	now := s.now()
	start, end := periodWindow(period, now)

	data := &StatisticsData{
		Period:    period,
		StartDate: start,
		EndDate:   end,
	}

	txns, err := s.txns.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	categories := map[string]float64{}
	for _, t := range txns {
		idx := weekdayIndex(t.Date)
		switch t.Type {
		case transaction.TypeIncome:
			data.TotalIncome += t.Amount
			data.WeekdayIncome[idx] += t.Amount
		case transaction.TypeExpense:
			data.TotalExpense += t.Amount
			data.WeekdayExpense[idx] += t.Amount
			categories[t.Category] += t.Amount
		}
	}
	data.CategoryExpenses = sortedCategories(categories)

	occs, err := s.planned.Occurrences(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for _, occ := range occs {
		idx := weekdayIndex(occ.Date)
		if occ.Payment.IsIncome {
			data.PlannedIncome += occ.Payment.Amount
			data.PlannedWeekdayIncome[idx] += occ.Payment.Amount
		} else {
			data.PlannedExpense += occ.Payment.Amount
			data.PlannedWeekdayExpense[idx] += occ.Payment.Amount
		}
	}

	if err := s.addMonthComparison(ctx, now, data); err != nil {
		return nil, err
	}

	balance, err := s.balance.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	data.Balance = balance

	var limit float64
	if stored, err := s.settings.Get(ctx); err != nil {
		return nil, err
	} else if stored != nil {
		limit = stored.MonthlyBudgetLimit
	}

	data.HealthScore = HealthScore(balance, data.TotalIncome, data.TotalExpense, limit)

	return data, nil
}

// addMonthComparison fills the current vs previous calendar-month expense
// totals, which stay calendar-aligned whatever period is selected.
func (s *Service) addMonthComparison(ctx context.Context, now time.Time, data *StatisticsData) error {
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	curEnd := curStart.AddDate(0, 1, -1)
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.AddDate(0, 0, -1)

	cur, err := s.sumExpenses(ctx, curStart, curEnd)
	if err != nil {
		return err
	}
	prev, err := s.sumExpenses(ctx, prevStart, prevEnd)
	if err != nil {
		return err
	}

	data.CurrentMonthExpense = cur
	data.PreviousMonthExpense = prev
	return nil
}

func (s *Service) sumExpenses(ctx context.Context, start, end time.Time) (float64, error) {
	txns, err := s.txns.ListByDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, t := range txns {
		if t.Type == transaction.TypeExpense {
			total += t.Amount
		}
	}
	return total, nil
}

// periodWindow returns the [start, end] dates covered by a period relative
// to now. Weeks are Monday-first.
func periodWindow(period string, now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, -1)
	default: // PeriodYearly
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		return start, time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, day.Location())
	}
}

// weekdayIndex maps a date to its Monday-first bucket (Monday=0 … Sunday=6)
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func sortedCategories(totals map[string]float64) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
