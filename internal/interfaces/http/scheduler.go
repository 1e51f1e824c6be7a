package http

import (
	"net/http"
	"time"
)

// JobTrigger is the slice of the scheduler the admin surface needs: kicking
// off a run outside the daily schedule and reporting when the next one fires.
type JobTrigger interface {
	TriggerNow()
	NextScheduledTime(now time.Time) time.Time
}

type SchedulerHandler struct {
	trigger JobTrigger
	now     func() time.Time
}

// NewSchedulerHandler creates a scheduler admin handler. trigger may be nil
// when the scheduler is disabled; both endpoints then answer 503.
func NewSchedulerHandler(trigger JobTrigger) *SchedulerHandler {
	return &SchedulerHandler{trigger: trigger, now: time.Now}
}

// HandleStatus handles GET /api/admin/scheduler
func (h *SchedulerHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.trigger == nil {
		http.Error(w, "Scheduler is disabled", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": true,
		"nextRun": h.trigger.NextScheduledTime(h.now()),
	})
}

// HandleTrigger handles POST /api/admin/scheduler/trigger
func (h *SchedulerHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.trigger == nil {
		http.Error(w, "Scheduler is disabled", http.StatusServiceUnavailable)
		return
	}

	h.trigger.TriggerNow()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "triggered"})
}
