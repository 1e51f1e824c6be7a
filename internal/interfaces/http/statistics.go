package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"centavo/internal/domain/statistics"
	"centavo/internal/shared/messages"
)

type StatisticsHandler struct {
	statisticsService *statistics.Service
}

func NewStatisticsHandler(statisticsService *statistics.Service) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// HandleStatistics handles GET /api/statistics?period=WEEKLY|MONTHLY|YEARLY
func (h *StatisticsHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	period := strings.ToUpper(r.URL.Query().Get("period"))
	if period == "" {
		period = statistics.PeriodMonthly
	}

	data, err := h.statisticsService.ForPeriod(r.Context(), period)
	if err != nil {
		if errors.Is(err, statistics.ErrInvalidPeriod) {
			http.Error(w, messages.InvalidPeriod, http.StatusBadRequest)
			return
		}
		log.Printf("Error computing %s statistics: %v", period, err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, data)
}
