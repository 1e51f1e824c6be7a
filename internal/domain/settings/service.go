package settings

import (
	"context"
)

// Service contains the business logic for settings operations
type Service struct {
	repo Repository
}

// NewService creates a new settings service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSettings returns the user's settings, falling back to defaults when
// nothing has been saved.
func (s *Service) GetSettings(ctx context.Context) (*UserSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return Defaults(), nil
	}
	if stored.CategoryBudgets == nil {
		stored.CategoryBudgets = map[string]float64{}
	}
	return stored, nil
}

// UpdateSettings applies a partial settings update after validation
func (s *Service) UpdateSettings(ctx context.Context, params UpdateParams) (*UserSettings, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, params)
}
