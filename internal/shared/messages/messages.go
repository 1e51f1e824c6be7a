// Package messages is the fixed catalog of user-visible text. Handlers pick
// failure messages from here; raw repository or driver error text is never
// surfaced to the client.
package messages

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Validation and lifecycle failure texts
const (
	TitleRequired      = "title required"
	AmountPositive     = "amount must be positive"
	FrequencyRequired  = "recurring payment needs a frequency"
	PaymentNotFound    = "payment not found"
	TransactionMissing = "transaction not found"
	NotPersisted       = "payment must be saved first"
	InvalidPeriod      = "unknown statistics period"
	InvalidBackup      = "backup file is not supported"
	PinInvalid         = "pin must be 4 to 8 digits"
	PinNotSet          = "no pin has been set"
	Internal           = "something went wrong"
)

// MessageText is a push notification template
type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Templates holds the push notification templates. Body strings are
// fmt.Sprintf formats; see the notification service for the arguments.
type Templates struct {
	UpcomingPayment MessageText `json:"upcoming_payment"`
	BudgetAlert     MessageText `json:"budget_alert"`
}

var defaults = Templates{
	UpcomingPayment: MessageText{
		Title: "Upcoming payment",
		Body:  "%s (%.2f) is due on %s",
	},
	BudgetAlert: MessageText{
		Title: "Budget alert",
		Body:  "You have spent %.2f of your %.2f monthly budget",
	},
}

var (
	loaded   = defaults
	loadOnce sync.Once
	loadErr  error
)

// Load reads template overrides from a JSON file and caches the result.
// Safe to call from multiple goroutines; an empty path keeps the defaults.
func Load(path string) error {
	loadOnce.Do(func() {
		if path == "" {
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read messages file: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to parse messages file: %w", err)
			loaded = defaults
		}
	})
	return loadErr
}

// Catalog returns the active notification templates
func Catalog() Templates {
	return loaded
}
