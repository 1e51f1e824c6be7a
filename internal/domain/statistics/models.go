package statistics

import (
	"errors"
	"time"
)

// Periods selectable for aggregation
const (
	PeriodWeekly  = "WEEKLY"
	PeriodMonthly = "MONTHLY"
	PeriodYearly  = "YEARLY"
)

// Domain errors
var ErrInvalidPeriod = errors.New("invalid statistics period")

// IsValidPeriod checks if the provided period is valid
func IsValidPeriod(p string) bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

// WeekdaySeries holds per-weekday amount sums, Monday-first regardless of
// locale: index 0 is Monday, index 6 is Sunday.
type WeekdaySeries [7]float64

// CategoryTotal is the summed expense for one category within the period
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// StatisticsData is the aggregate view for one period: actual and planned
// totals, weekday series, category breakdown, and the calendar-month
// comparison (always calendar-aligned, independent of the selected period).
type StatisticsData struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	TotalIncome    float64 `json:"totalIncome"`
	TotalExpense   float64 `json:"totalExpense"`
	PlannedIncome  float64 `json:"plannedIncome"`
	PlannedExpense float64 `json:"plannedExpense"`

	WeekdayIncome         WeekdaySeries `json:"weekdayIncome"`
	WeekdayExpense        WeekdaySeries `json:"weekdayExpense"`
	PlannedWeekdayIncome  WeekdaySeries `json:"plannedWeekdayIncome"`
	PlannedWeekdayExpense WeekdaySeries `json:"plannedWeekdayExpense"`

	CategoryExpenses []CategoryTotal `json:"categoryExpenses"`

	CurrentMonthExpense  float64 `json:"currentMonthExpense"`
	PreviousMonthExpense float64 `json:"previousMonthExpense"`

	Balance     float64 `json:"balance"`
	HealthScore int     `json:"healthScore"`
}
