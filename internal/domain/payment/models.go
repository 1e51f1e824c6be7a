package payment

import (
	"errors"
	"time"

	"centavo/internal/shared/messages"
)

// Recurrence types
const (
	RecurrenceDaily   = "DAILY"
	RecurrenceWeekly  = "WEEKLY"
	RecurrenceMonthly = "MONTHLY"
	RecurrenceYearly  = "YEARLY"
)

var recurrenceTypes = map[string]struct{}{
	RecurrenceDaily:   {},
	RecurrenceWeekly:  {},
	RecurrenceMonthly: {},
	RecurrenceYearly:  {},
}

// Domain errors
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrRuleNotFound      = errors.New("rule not found")
	ErrNotPersisted      = errors.New("payment has no persisted id")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidRecurrence = errors.New("invalid recurrence type")
)

// inputError carries a fixed catalog message for a validation failure.
// Handlers match on ErrInvalidInput and surface Error() verbatim.
type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
func (e *inputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(msg string) error { return &inputError{msg: msg} }

// ScheduledPayment is a user-defined payment: a one-off with a due date, or a
// recurring definition expanded into occurrences by the calculator.
type ScheduledPayment struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	IsIncome    bool      `json:"isIncome"`
	IsRecurring bool      `json:"isRecurring"`
	Frequency   string    `json:"frequency"` // informational label once rules exist
	DueDate     time.Time `json:"dueDate"`
	IsPaid      bool      `json:"isPaid"` // meaningful only for non-recurring payments
	Category    string    `json:"category"`
	Emoji       string    `json:"emoji"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecurringRule describes how a scheduled payment repeats. A payment may carry
// several independent rules; each produces its own occurrence walk.
type RecurringRule struct {
	ID                 int64          `json:"id"`
	ScheduledPaymentID int64          `json:"scheduledPaymentId"`
	Type               string         `json:"recurrenceType"` // DAILY, WEEKLY, MONTHLY, YEARLY
	Interval           int            `json:"interval"`       // every N units, >= 1
	DayOfMonth         *int           `json:"dayOfMonth,omitempty"`
	DaysOfWeek         []time.Weekday `json:"daysOfWeek,omitempty"`
	EndDate            *time.Time     `json:"endDate,omitempty"`
	MaxOccurrences     *int           `json:"maxOccurrences,omitempty"`
	CurrentOccurrences int            `json:"currentOccurrences"`
	LastGenerated      *time.Time     `json:"lastGenerated,omitempty"`
	IsActive           bool           `json:"isActive"`
}

// PlannedOccurrence is an ephemeral projection of a payment onto a concrete
// date. It is produced on demand and never persisted.
type PlannedOccurrence struct {
	Payment *ScheduledPayment `json:"payment"`
	Date    time.Time         `json:"date"`
}

// CreateParams contains parameters for creating a scheduled payment
type CreateParams struct {
	Title       string
	Amount      float64
	IsIncome    bool
	IsRecurring bool
	Frequency   string
	DueDate     time.Time
	Category    string
	Emoji       string
	Rules       []RuleParams
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Title == "" {
		return invalidInput(messages.TitleRequired)
	}
	if p.Amount <= 0 {
		return invalidInput(messages.AmountPositive)
	}
	if p.DueDate.IsZero() {
		return invalidInput("due date is required")
	}
	if p.IsRecurring && p.Frequency == "" && len(p.Rules) == 0 {
		return invalidInput(messages.FrequencyRequired)
	}
	for _, r := range p.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateParams contains parameters for updating a scheduled payment
type UpdateParams struct {
	Title       *string
	Amount      *float64
	IsIncome    *bool
	IsRecurring *bool
	Frequency   *string
	DueDate     *time.Time
	IsPaid      *bool
	Category    *string
	Emoji       *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return invalidInput(messages.TitleRequired)
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return invalidInput(messages.AmountPositive)
	}
	return nil
}

// RuleParams contains parameters for creating a recurring rule
type RuleParams struct {
	Type           string
	Interval       int
	DayOfMonth     *int
	DaysOfWeek     []time.Weekday
	EndDate        *time.Time
	MaxOccurrences *int
}

// Validate validates the rule parameters
func (p RuleParams) Validate() error {
	if !IsValidRecurrenceType(p.Type) {
		return ErrInvalidRecurrence
	}
	if p.Interval < 1 {
		return invalidInput("interval must be at least 1")
	}
	if p.DayOfMonth != nil && (*p.DayOfMonth < 1 || *p.DayOfMonth > 31) {
		return invalidInput("day of month must be between 1 and 31")
	}
	if p.MaxOccurrences != nil && *p.MaxOccurrences < 1 {
		return invalidInput("max occurrences must be at least 1")
	}
	return nil
}

// BookkeepingParams updates the generation counters on a rule after an
// occurrence has been realized.
type BookkeepingParams struct {
	LastGenerated      *time.Time
	CurrentOccurrences *int
}

// IsValidRecurrenceType checks if the provided recurrence type is valid
func IsValidRecurrenceType(t string) bool {
	_, ok := recurrenceTypes[t]
	return ok
}
