package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"centavo/internal/domain/settings"
	"centavo/internal/shared/messages"
)

type SettingsHandler struct {
	settingsService *settings.Service
}

func NewSettingsHandler(settingsService *settings.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type UpdateSettingsRequest struct {
	MonthlyBudgetLimit    *float64           `json:"monthlyBudgetLimit,omitempty"`
	CategoryBudgets       map[string]float64 `json:"categoryBudgets,omitempty"`
	AlertThresholdPercent *float64           `json:"alertThresholdPercent,omitempty"`
	Currency              *string            `json:"currency,omitempty"`
	Locale                *string            `json:"locale,omitempty"`
	Theme                 *string            `json:"theme,omitempty"`
}

// HandleSettings handles GET and PUT on /api/settings
func (h *SettingsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		stored, err := h.settingsService.GetSettings(r.Context())
		if err != nil {
			log.Printf("Error getting settings: %v", err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stored)

	case http.MethodPut:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		var req UpdateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		updated, err := h.settingsService.UpdateSettings(r.Context(), settings.UpdateParams{
			MonthlyBudgetLimit:    req.MonthlyBudgetLimit,
			CategoryBudgets:       req.CategoryBudgets,
			AlertThresholdPercent: req.AlertThresholdPercent,
			Currency:              req.Currency,
			Locale:                req.Locale,
			Theme:                 req.Theme,
		})
		if err != nil {
			if errors.Is(err, settings.ErrInvalidInput) || errors.Is(err, settings.ErrInvalidThreshold) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Printf("Error updating settings: %v", err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
