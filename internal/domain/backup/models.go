package backup

import (
	"errors"
	"time"

	"centavo/internal/domain/payment"
	"centavo/internal/domain/settings"
	"centavo/internal/domain/transaction"
)

// FormatVersion is the current backup document version
const FormatVersion = 1

// Domain errors
var (
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	ErrEmptyDocument      = errors.New("backup document is empty")
)

// Document is the versioned JSON backup payload. Identifiers are not
// preserved across a restore; records are re-inserted and references between
// payments, rules, and transactions are remapped to the new ids.
type Document struct {
	Version      int                         `json:"version"`
	ID           string                      `json:"id"`
	ExportedAt   time.Time                   `json:"exportedAt"`
	Payments     []*payment.ScheduledPayment `json:"payments"`
	Rules        []*payment.RecurringRule    `json:"rules"`
	Transactions []*transaction.Transaction  `json:"transactions"`
	Settings     *settings.UserSettings      `json:"settings,omitempty"`
}

// ImportResult summarizes what a restore inserted
type ImportResult struct {
	Payments     int `json:"payments"`
	Rules        int `json:"rules"`
	Transactions int `json:"transactions"`
}
