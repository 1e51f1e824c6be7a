package payment

import (
	"context"
	"fmt"
	"time"

	"centavo/internal/domain/transaction"
)

// Lifecycle realizes planned occurrences as transactions. Marking a payment
// paid for a given date happens at most once per (payment, date) pair; the
// guarantee comes from a lookup-before-insert check, and callers are expected
// to serialize mark-as-paid invocations per payment.
type Lifecycle struct {
	payments Repository
	rules    RuleRepository
	txns     transaction.Repository
}

// NewLifecycle creates a new payment lifecycle coordinator
func NewLifecycle(payments Repository, rules RuleRepository, txns transaction.Repository) *Lifecycle {
	return &Lifecycle{payments: payments, rules: rules, txns: txns}
}

// MarkPaid marks a payment as paid for the given date. For non-recurring
// payments the paid flag is set on the payment itself; either way a mirroring
// transaction is created unless one already exists for (payment, date).
// Recurring payments additionally get lastGenerated advanced on every rule.
//
// Steps already applied are not rolled back when a later step fails; the
// operation is safe to retry because every step is idempotent.
func (l *Lifecycle) MarkPaid(ctx context.Context, paymentID int64, date time.Time) (*transaction.Transaction, error) {
	if paymentID <= 0 {
		return nil, ErrNotPersisted
	}

	p, err := l.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	date = dateOnly(date)

	if !p.IsRecurring && !p.IsPaid {
		paid := true
		if _, err := l.payments.Update(ctx, p.ID, UpdateParams{IsPaid: &paid}); err != nil {
			return nil, fmt.Errorf("failed to flag payment as paid: %w", err)
		}
	}

	existing, err := l.txns.FindByPaymentAndDate(ctx, p.ID, date)
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup failed: %w", err)
	}

	txn := existing
	if txn == nil {
		txn, err = l.txns.Create(ctx, transaction.CreateParams{
			Title:              p.Title,
			Amount:             p.Amount,
			Type:               transactionType(p),
			Category:           p.Category,
			Emoji:              p.Emoji,
			Date:               date,
			ScheduledPaymentID: &p.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction: %w", err)
		}
	}

	if p.IsRecurring {
		rules, err := l.rules.ListByPaymentID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range rules {
			d := date
			if err := l.rules.UpdateBookkeeping(ctx, r.ID, BookkeepingParams{LastGenerated: &d}); err != nil {
				return nil, fmt.Errorf("failed to update rule %d bookkeeping: %w", r.ID, err)
			}
		}
	}

	return txn, nil
}

// MarkUnpaid flips the paid flag back on a non-recurring payment. No
// transaction is deleted; undoing the realized record is a separate,
// deliberate user action.
func (l *Lifecycle) MarkUnpaid(ctx context.Context, paymentID int64) error {
	if paymentID <= 0 {
		return ErrNotPersisted
	}

	p, err := l.payments.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPaymentNotFound
	}
	if p.IsRecurring {
		// Recurring payments have no single paid state to clear.
		return nil
	}

	paid := false
	_, err = l.payments.Update(ctx, p.ID, UpdateParams{IsPaid: &paid})
	return err
}

func transactionType(p *ScheduledPayment) string {
	if p.IsIncome {
		return transaction.TypeIncome
	}
	return transaction.TypeExpense
}
