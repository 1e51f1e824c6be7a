package transaction

import (
	"context"
	"errors"
)

// Service contains the business logic for transaction operations
type Service struct {
	repo Repository
}

// NewService creates a new transaction service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateTransaction creates a new transaction with business validation
func (s *Service) CreateTransaction(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetTransaction retrieves a transaction by ID
func (s *Service) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	if id <= 0 {
		return nil, errors.New("valid transaction ID is required")
	}

	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// ListTransactions returns paginated transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, limit, offset int) ([]*Transaction, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// UpdateTransaction updates a transaction after validation
func (s *Service) UpdateTransaction(ctx context.Context, id int64, params UpdateParams) (*Transaction, error) {
	if id <= 0 {
		return nil, errors.New("valid transaction ID is required")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteTransaction deletes a transaction by ID
func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("valid transaction ID is required")
	}
	return s.repo.Delete(ctx, id)
}

// GetBalance returns total income minus total expense over all transactions.
func (s *Service) GetBalance(ctx context.Context) (float64, error) {
	var balance float64
	offset := 0
	const batch = 500

	for {
		txns, err := s.repo.List(ctx, batch, offset)
		if err != nil {
			return 0, err
		}
		if len(txns) == 0 {
			break
		}

		for _, t := range txns {
			switch t.Type {
			case TypeIncome:
				balance += t.Amount
			case TypeExpense:
				balance -= t.Amount
			}
		}

		offset += len(txns)
		if len(txns) < batch {
			break
		}
	}

	return balance, nil
}
