package backup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"centavo/internal/domain/payment"
	"centavo/internal/domain/settings"
	"centavo/internal/domain/transaction"
)

// Service assembles and restores versioned backup documents
type Service struct {
	payments payment.Repository
	rules    payment.RuleRepository
	txns     transaction.Repository
	settings settings.Repository
	now      func() time.Time
}

// NewService creates a new backup service
func NewService(payments payment.Repository, rules payment.RuleRepository, txns transaction.Repository, settingsRepo settings.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{payments: payments, rules: rules, txns: txns, settings: settingsRepo, now: now}
}

// Export gathers every record into a single document
func (s *Service) Export(ctx context.Context) (*Document, error) {
	doc := &Document{
		Version:    FormatVersion,
		ID:         uuid.NewString(),
		ExportedAt: s.now(),
	}

	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export payments: %w", err)
	}
	doc.Payments = payments

	for _, p := range payments {
		rules, err := s.rules.ListByPaymentID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export rules for payment %d: %w", p.ID, err)
		}
		doc.Rules = append(doc.Rules, rules...)
	}

	txns, err := s.listAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}
	doc.Transactions = txns

	stored, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}
	doc.Settings = stored

	log.Printf("Backup exported: payments=%d rules=%d transactions=%d",
		len(doc.Payments), len(doc.Rules), len(doc.Transactions))

	return doc, nil
}

// Import restores a document by re-inserting its records. Payment ids are
// assigned fresh and the rule and transaction back-references follow the
// old-to-new id mapping.
func (s *Service) Import(ctx context.Context, doc *Document) (*ImportResult, error) {
	if doc == nil {
		return nil, ErrEmptyDocument
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	result := &ImportResult{}
	idMap := make(map[int64]int64, len(doc.Payments))

	for _, p := range doc.Payments {
		created, err := s.payments.Create(ctx, payment.CreateParams{
			Title:       p.Title,
			Amount:      p.Amount,
			IsIncome:    p.IsIncome,
			IsRecurring: p.IsRecurring,
			Frequency:   p.Frequency,
			DueDate:     p.DueDate,
			Category:    p.Category,
			Emoji:       p.Emoji,
		})
		if err != nil {
			return result, fmt.Errorf("failed to restore payment %q: %w", p.Title, err)
		}

		if p.IsPaid {
			paid := true
			if _, err := s.payments.Update(ctx, created.ID, payment.UpdateParams{IsPaid: &paid}); err != nil {
				return result, fmt.Errorf("failed to restore paid flag for %q: %w", p.Title, err)
			}
		}

		idMap[p.ID] = created.ID
		result.Payments++
	}

	for _, r := range doc.Rules {
		newID, ok := idMap[r.ScheduledPaymentID]
		if !ok {
			// Rule references a payment missing from the document; skip it
			// rather than failing the whole restore.
			log.Printf("Backup import: skipping rule for unknown payment %d", r.ScheduledPaymentID)
			continue
		}

		created, err := s.rules.Create(ctx, newID, payment.RuleParams{
			Type:           r.Type,
			Interval:       r.Interval,
			DayOfMonth:     r.DayOfMonth,
			DaysOfWeek:     r.DaysOfWeek,
			EndDate:        r.EndDate,
			MaxOccurrences: r.MaxOccurrences,
		})
		if err != nil {
			return result, fmt.Errorf("failed to restore rule for payment %d: %w", newID, err)
		}

		if r.LastGenerated != nil || r.CurrentOccurrences > 0 {
			count := r.CurrentOccurrences
			if err := s.rules.UpdateBookkeeping(ctx, created.ID, payment.BookkeepingParams{
				LastGenerated:      r.LastGenerated,
				CurrentOccurrences: &count,
			}); err != nil {
				return result, fmt.Errorf("failed to restore rule bookkeeping: %w", err)
			}
		}
		result.Rules++
	}

	for _, t := range doc.Transactions {
		var ref *int64
		if t.ScheduledPaymentID != nil {
			if newID, ok := idMap[*t.ScheduledPaymentID]; ok {
				ref = &newID
			}
		}

		_, err := s.txns.Create(ctx, transaction.CreateParams{
			Title:              t.Title,
			Amount:             t.Amount,
			Type:               t.Type,
			Category:           t.Category,
			Emoji:              t.Emoji,
			Date:               t.Date,
			ScheduledPaymentID: ref,
		})
		if err != nil {
			return result, fmt.Errorf("failed to restore transaction %q: %w", t.Title, err)
		}
		result.Transactions++
	}

	if doc.Settings != nil {
		if err := s.restoreSettings(ctx, doc.Settings); err != nil {
			return result, err
		}
	}

	log.Printf("Backup imported: payments=%d rules=%d transactions=%d",
		result.Payments, result.Rules, result.Transactions)

	return result, nil
}

func (s *Service) restoreSettings(ctx context.Context, stored *settings.UserSettings) error {
	_, err := s.settings.Upsert(ctx, settings.UpdateParams{
		MonthlyBudgetLimit:    &stored.MonthlyBudgetLimit,
		CategoryBudgets:       stored.CategoryBudgets,
		AlertThresholdPercent: &stored.AlertThresholdPercent,
		Currency:              &stored.Currency,
		Locale:                &stored.Locale,
		Theme:                 &stored.Theme,
	})
	if err != nil {
		return fmt.Errorf("failed to restore settings: %w", err)
	}
	return nil
}

func (s *Service) listAllTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	var all []*transaction.Transaction
	offset := 0
	const batch = 500

	for {
		txns, err := s.txns.List(ctx, batch, offset)
		if err != nil {
			return nil, err
		}
		if len(txns) == 0 {
			break
		}

		all = append(all, txns...)
		offset += len(txns)

		if len(txns) < batch {
			break
		}
	}

	return all, nil
}
