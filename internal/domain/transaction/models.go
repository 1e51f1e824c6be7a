package transaction

import (
	"errors"
	"time"

	"centavo/internal/shared/messages"
)

// Transaction types
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidInput        = errors.New("invalid input")
)

// inputError carries a fixed catalog message for a validation failure.
type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
func (e *inputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(msg string) error { return &inputError{msg: msg} }

// Transaction is a realized financial event. ScheduledPaymentID is a weak
// back-reference to the originating payment, used only for the
// one-transaction-per-(payment, date) idempotency lookup.
type Transaction struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Amount             float64   `json:"amount"`
	Type               string    `json:"type"` // INCOME or EXPENSE
	Category           string    `json:"category"`
	Emoji              string    `json:"emoji"`
	Date               time.Time `json:"date"`
	ScheduledPaymentID *int64    `json:"scheduledPaymentId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a transaction
type CreateParams struct {
	Title              string
	Amount             float64
	Type               string
	Category           string
	Emoji              string
	Date               time.Time
	ScheduledPaymentID *int64
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Title == "" {
		return invalidInput(messages.TitleRequired)
	}
	if p.Amount <= 0 {
		return invalidInput(messages.AmountPositive)
	}
	if p.Type != TypeIncome && p.Type != TypeExpense {
		return ErrInvalidType
	}
	if p.Date.IsZero() {
		return invalidInput("date is required")
	}
	return nil
}

// UpdateParams contains parameters for updating a transaction
type UpdateParams struct {
	Title    *string
	Amount   *float64
	Type     *string
	Category *string
	Emoji    *string
	Date     *time.Time
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return invalidInput(messages.TitleRequired)
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return invalidInput(messages.AmountPositive)
	}
	if p.Type != nil && *p.Type != TypeIncome && *p.Type != TypeExpense {
		return ErrInvalidType
	}
	return nil
}
