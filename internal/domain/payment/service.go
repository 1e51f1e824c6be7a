package payment

import (
	"context"
	"time"
)

// Service contains the business logic for scheduled payment operations
type Service struct {
	repo  Repository
	rules RuleRepository
}

// NewService creates a new payment service
func NewService(repo Repository, rules RuleRepository) *Service {
	return &Service{repo: repo, rules: rules}
}

// CreatePayment creates a scheduled payment and its recurring rules
func (s *Service) CreatePayment(ctx context.Context, params CreateParams) (*ScheduledPayment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	for _, rp := range params.Rules {
		if _, err := s.rules.Create(ctx, p.ID, rp); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// GetPayment retrieves a scheduled payment by ID
func (s *Service) GetPayment(ctx context.Context, id int64) (*ScheduledPayment, error) {
	if id <= 0 {
		return nil, ErrNotPersisted
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// ListPayments returns all scheduled payments
func (s *Service) ListPayments(ctx context.Context) ([]*ScheduledPayment, error) {
	return s.repo.List(ctx)
}

// ListRules returns the recurring rules attached to a payment
func (s *Service) ListRules(ctx context.Context, paymentID int64) ([]*RecurringRule, error) {
	if paymentID <= 0 {
		return nil, ErrNotPersisted
	}
	return s.rules.ListByPaymentID(ctx, paymentID)
}

// AddRule attaches a recurring rule to an existing payment
func (s *Service) AddRule(ctx context.Context, paymentID int64, params RuleParams) (*RecurringRule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetPayment(ctx, paymentID); err != nil {
		return nil, err
	}
	return s.rules.Create(ctx, paymentID, params)
}

// RemoveRule detaches a single recurring rule from a payment. Already
// materialized transactions are untouched; only future occurrences stop.
func (s *Service) RemoveRule(ctx context.Context, paymentID, ruleID int64) error {
	if _, err := s.findRule(ctx, paymentID, ruleID); err != nil {
		return err
	}
	return s.rules.Delete(ctx, ruleID)
}

// SetRuleActive toggles whether a rule contributes occurrences. An inactive
// rule keeps its bookkeeping, so reactivating resumes where it stopped.
func (s *Service) SetRuleActive(ctx context.Context, paymentID, ruleID int64, active bool) (*RecurringRule, error) {
	rule, err := s.findRule(ctx, paymentID, ruleID)
	if err != nil {
		return nil, err
	}
	if err := s.rules.SetActive(ctx, ruleID, active); err != nil {
		return nil, err
	}
	rule.IsActive = active
	return rule, nil
}

// findRule resolves a rule by ID and confirms it belongs to the payment.
func (s *Service) findRule(ctx context.Context, paymentID, ruleID int64) (*RecurringRule, error) {
	if paymentID <= 0 || ruleID <= 0 {
		return nil, ErrNotPersisted
	}
	rules, err := s.rules.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		if rule.ID == ruleID {
			return rule, nil
		}
	}
	return nil, ErrRuleNotFound
}

// UpdatePayment updates a scheduled payment after validation
func (s *Service) UpdatePayment(ctx context.Context, id int64, params UpdateParams) (*ScheduledPayment, error) {
	if id <= 0 {
		return nil, ErrNotPersisted
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// DeletePayment deletes a payment and cascades to its recurring rules.
// Rules go first so a failure there leaves the payment (and its rules)
// intact rather than orphaning the rules.
func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotPersisted
	}

	if err := s.rules.DeleteByPaymentID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Occurrences expands every payment's rules into planned occurrences within
// [start, end]. Payments are independent, so the expansion fans out with
// bounded concurrency and joins before returning. The flattened result
// carries no cross-payment ordering.
func (s *Service) Occurrences(ctx context.Context, start, end time.Time) ([]PlannedOccurrence, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, payments, start, end)
}

// OccurrencesForPayment expands a single payment within [start, end].
func (s *Service) OccurrencesForPayment(ctx context.Context, paymentID int64, start, end time.Time) ([]PlannedOccurrence, error) {
	p, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.ListByPaymentID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return GenerateOccurrences(p, rules, start, end), nil
}
