package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"centavo/internal/domain/payment"
	"centavo/internal/domain/settings"
	"centavo/internal/domain/transaction"
	"centavo/internal/shared/messages"
)

// OccurrenceSource supplies planned occurrences for a window. Satisfied by
// the payment service.
type OccurrenceSource interface {
	Occurrences(ctx context.Context, start, end time.Time) ([]payment.PlannedOccurrence, error)
}

// Service builds and delivers payment reminders and budget alerts
type Service struct {
	repo     Repository
	msgr     Messenger
	planned  OccurrenceSource
	txns     transaction.Repository
	settings settings.Repository
	now      func() time.Time
}

// NewService creates a new notification service
func NewService(repo Repository, msgr Messenger, planned OccurrenceSource, txns transaction.Repository, settingsRepo settings.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, msgr: msgr, planned: planned, txns: txns, settings: settingsRepo, now: now}
}

// RegisterDevice registers a push target, reactivating it if already known
func (s *Service) RegisterDevice(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

// SendUpcomingReminders pushes one reminder per planned occurrence falling
// within the next daysAhead days. Returns the number of messages delivered.
func (s *Service) SendUpcomingReminders(ctx context.Context, daysAhead int) (int, error) {
	if daysAhead < 1 {
		daysAhead = 1
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	occs, err := s.planned.Occurrences(ctx, today, today.AddDate(0, 0, daysAhead))
	if err != nil {
		return 0, err
	}
	if len(occs) == 0 {
		return 0, nil
	}

	tokens, err := s.repo.ListActiveTokens(ctx)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	catalog := messages.Catalog()
	sent := 0
	for _, occ := range occs {
		msg := Message{
			Title: catalog.UpcomingPayment.Title,
			Body: fmt.Sprintf(catalog.UpcomingPayment.Body,
				occ.Payment.Title, occ.Payment.Amount, occ.Date.Format("2006-01-02")),
			Data: map[string]string{
				"paymentId": fmt.Sprintf("%d", occ.Payment.ID),
				"date":      occ.Date.Format("2006-01-02"),
			},
		}
		sent += s.broadcast(ctx, tokens, msg)
	}

	log.Printf("Upcoming-payment reminders sent: occurrences=%d messages=%d", len(occs), sent)
	return sent, nil
}

// SendBudgetAlert pushes an alert when the current calendar month's expenses
// have crossed the configured threshold percentage of the budget limit.
// A zero or unset limit disables the alert.
func (s *Service) SendBudgetAlert(ctx context.Context) (bool, error) {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	if stored == nil || stored.MonthlyBudgetLimit <= 0 {
		return false, nil
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	txns, err := s.txns.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return false, err
	}

	var spent float64
	for _, t := range txns {
		if t.Type == transaction.TypeExpense {
			spent += t.Amount
		}
	}

	threshold := stored.MonthlyBudgetLimit * stored.AlertThresholdPercent / 100
	if spent < threshold {
		return false, nil
	}

	tokens, err := s.repo.ListActiveTokens(ctx)
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return false, nil
	}

	catalog := messages.Catalog()
	msg := Message{
		Title: catalog.BudgetAlert.Title,
		Body:  fmt.Sprintf(catalog.BudgetAlert.Body, spent, stored.MonthlyBudgetLimit),
	}
	s.broadcast(ctx, tokens, msg)

	log.Printf("Budget alert sent: spent=%.2f limit=%.2f", spent, stored.MonthlyBudgetLimit)
	return true, nil
}

// broadcast sends a message to every active token, deactivating tokens the
// messenger reports as invalid.
func (s *Service) broadcast(ctx context.Context, tokens []*DeviceToken, msg Message) int {
	sent := 0
	for _, t := range tokens {
		if err := s.msgr.Send(ctx, t.Token, msg); err != nil {
			log.Printf("Failed to push to token %d: %v", t.ID, err)
			continue
		}
		sent++
	}
	return sent
}
