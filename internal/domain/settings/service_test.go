package settings

import (
	"context"
	"testing"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	GetFunc    func(ctx context.Context) (*UserSettings, error)
	UpsertFunc func(ctx context.Context, params UpdateParams) (*UserSettings, error)
}

func (m *MockRepository) Get(ctx context.Context) (*UserSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) Upsert(ctx context.Context, params UpdateParams) (*UserSettings, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return nil, nil
}

func TestGetSettingsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	got, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AlertThresholdPercent != 80 {
		t.Errorf("default alert threshold %.0f, want 80", got.AlertThresholdPercent)
	}
	if got.Currency != "USD" {
		t.Errorf("default currency %s, want USD", got.Currency)
	}
	if got.CategoryBudgets == nil {
		t.Error("category budgets map not initialized")
	}
}

func TestGetSettingsStored(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{
		GetFunc: func(ctx context.Context) (*UserSettings, error) {
			return &UserSettings{MonthlyBudgetLimit: 1500, Currency: "EUR"}, nil
		},
	}
	svc := NewService(repo)

	got, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MonthlyBudgetLimit != 1500 {
		t.Errorf("budget limit %.2f, want 1500", got.MonthlyBudgetLimit)
	}
	if got.CategoryBudgets == nil {
		t.Error("nil category budgets not normalized to an empty map")
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	ctx := context.Background()

	negative := -100.0
	over := 150.0

	tests := []struct {
		name    string
		params  UpdateParams
		wantErr bool
	}{
		{
			name:   "Valid",
			params: UpdateParams{MonthlyBudgetLimit: floatPtr(2000), CategoryBudgets: map[string]float64{"Rent": 1200}},
		},
		{
			name:    "NegativeLimit",
			params:  UpdateParams{MonthlyBudgetLimit: &negative},
			wantErr: true,
		},
		{
			name:    "ThresholdOver100",
			params:  UpdateParams{AlertThresholdPercent: &over},
			wantErr: true,
		},
		{
			name:    "EmptyCategoryName",
			params:  UpdateParams{CategoryBudgets: map[string]float64{"": 100}},
			wantErr: true,
		},
		{
			name:    "NegativeCategoryBudget",
			params:  UpdateParams{CategoryBudgets: map[string]float64{"Food": -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{
				UpsertFunc: func(ctx context.Context, params UpdateParams) (*UserSettings, error) {
					return &UserSettings{}, nil
				},
			}
			svc := NewService(repo)

			_, err := svc.UpdateSettings(ctx, tt.params)
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
