package settings

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
	ErrInvalidInput     = errors.New("invalid input")
)

// inputError carries a fixed catalog message for a validation failure.
type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
func (e *inputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(msg string) error { return &inputError{msg: msg} }

// UserSettings holds the single user's preferences and budget configuration.
// One row per installation; reads fall back to defaults when none exists.
type UserSettings struct {
	MonthlyBudgetLimit    float64            `json:"monthlyBudgetLimit"`
	CategoryBudgets       map[string]float64 `json:"categoryBudgets"`
	AlertThresholdPercent float64            `json:"alertThresholdPercent"`
	Currency              string             `json:"currency"`
	Locale                string             `json:"locale"`
	Theme                 string             `json:"theme"`
	UpdatedAt             time.Time          `json:"updatedAt"`
}

// Defaults returns the settings used before the user has saved any
func Defaults() *UserSettings {
	return &UserSettings{
		MonthlyBudgetLimit:    0,
		CategoryBudgets:       map[string]float64{},
		AlertThresholdPercent: 80,
		Currency:              "USD",
		Locale:                "en",
		Theme:                 "system",
	}
}

// UpdateParams contains parameters for updating user settings
type UpdateParams struct {
	MonthlyBudgetLimit    *float64
	CategoryBudgets       map[string]float64
	AlertThresholdPercent *float64
	Currency              *string
	Locale                *string
	Theme                 *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.MonthlyBudgetLimit != nil && *p.MonthlyBudgetLimit < 0 {
		return invalidInput("budget limit must not be negative")
	}
	if p.AlertThresholdPercent != nil && (*p.AlertThresholdPercent < 0 || *p.AlertThresholdPercent > 100) {
		return ErrInvalidThreshold
	}
	for category, limit := range p.CategoryBudgets {
		if category == "" {
			return invalidInput("category name is required")
		}
		if limit < 0 {
			return invalidInput("category budget must not be negative")
		}
	}
	return nil
}
