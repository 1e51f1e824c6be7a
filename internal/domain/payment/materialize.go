package payment

import (
	"context"
	"log"
	"time"

	"centavo/internal/domain/transaction"
)

// MaterializeResult contains the results of a due-occurrence materialization run
type MaterializeResult struct {
	PaymentsChecked     int
	OccurrencesDue      int
	TransactionsCreated int
	Errors              []string
}

// Materializer turns recurring-rule occurrences that have come due into
// transaction records. It advances lastGenerated and currentOccurrences on
// each rule, which is the only place those counters move; the interactive
// mark-as-paid path deliberately leaves currentOccurrences alone.
type Materializer struct {
	payments Repository
	rules    RuleRepository
	txns     transaction.Repository
	now      func() time.Time
}

// NewMaterializer creates a new materializer. now is injected so runs can be
// pinned to a fixed clock in tests.
func NewMaterializer(payments Repository, rules RuleRepository, txns transaction.Repository, now func() time.Time) *Materializer {
	if now == nil {
		now = time.Now
	}
	return &Materializer{payments: payments, rules: rules, txns: txns, now: now}
}

// Run materializes every occurrence due up to today across all recurring
// payments. Re-running is safe: realized (payment, date) pairs are skipped by
// the idempotency lookup and rules resume from lastGenerated.
func (m *Materializer) Run(ctx context.Context) (*MaterializeResult, error) {
	today := dateOnly(m.now())
	result := &MaterializeResult{}

	payments, err := m.payments.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		if !p.IsRecurring {
			continue
		}
		result.PaymentsChecked++

		if err := m.materializePayment(ctx, p, today, result); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}

	log.Printf("Materialization completed: payments=%d due=%d created=%d errors=%d",
		result.PaymentsChecked, result.OccurrencesDue, result.TransactionsCreated, len(result.Errors))

	return result, nil
}

func (m *Materializer) materializePayment(ctx context.Context, p *ScheduledPayment, today time.Time, result *MaterializeResult) error {
	rules, err := m.rules.ListByPaymentID(ctx, p.ID)
	if err != nil {
		return err
	}

	if len(rules) == 0 {
		return m.materializeLegacy(ctx, p, today, result)
	}

	for _, r := range rules {
		if !r.IsActive {
			continue
		}

		start := dateOnly(p.DueDate)
		if r.LastGenerated != nil {
			// The lastGenerated date itself was already realized.
			start = dateOnly(*r.LastGenerated).AddDate(0, 0, 1)
		}
		if start.After(today) {
			continue
		}

		due := GenerateOccurrences(p, []*RecurringRule{r}, start, today)
		result.OccurrencesDue += len(due)

		count := r.CurrentOccurrences
		for _, occ := range due {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			created, err := m.realize(ctx, p, occ.Date)
			if err != nil {
				return err
			}
			if created {
				result.TransactionsCreated++
			}

			count++
			d := occ.Date
			if err := m.rules.UpdateBookkeeping(ctx, r.ID, BookkeepingParams{
				LastGenerated:      &d,
				CurrentOccurrences: &count,
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

// materializeLegacy covers recurring payments that carry only a frequency
// label and no rule rows. There is no rule to hold lastGenerated, so every
// run rewalks from the due date; the (payment, date) idempotency lookup in
// realize keeps the rewalk from duplicating transactions.
func (m *Materializer) materializeLegacy(ctx context.Context, p *ScheduledPayment, today time.Time, result *MaterializeResult) error {
	start := dateOnly(p.DueDate)
	if start.After(today) {
		return nil
	}

	due := GenerateOccurrences(p, nil, start, today)
	result.OccurrencesDue += len(due)

	for _, occ := range due {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		created, err := m.realize(ctx, p, occ.Date)
		if err != nil {
			return err
		}
		if created {
			result.TransactionsCreated++
		}
	}
	return nil
}

// realize creates the mirroring transaction for one occurrence unless one
// already exists for the (payment, date) pair.
func (m *Materializer) realize(ctx context.Context, p *ScheduledPayment, date time.Time) (bool, error) {
	existing, err := m.txns.FindByPaymentAndDate(ctx, p.ID, date)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	_, err = m.txns.Create(ctx, transaction.CreateParams{
		Title:              p.Title,
		Amount:             p.Amount,
		Type:               transactionType(p),
		Category:           p.Category,
		Emoji:              p.Emoji,
		Date:               date,
		ScheduledPaymentID: &p.ID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
