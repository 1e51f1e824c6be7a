package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"centavo/internal/domain/payment"
	"centavo/internal/shared/messages"
)

const maxBodySize = 1 << 20 // 1 MiB

type PaymentHandler struct {
	paymentService *payment.Service
	lifecycle      *payment.Lifecycle
}

func NewPaymentHandler(paymentService *payment.Service, lifecycle *payment.Lifecycle) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, lifecycle: lifecycle}
}

// --- Request/Response types ---

type RuleRequest struct {
	RecurrenceType string  `json:"recurrenceType"`
	Interval       int     `json:"interval"`
	DayOfMonth     *int    `json:"dayOfMonth,omitempty"`
	DaysOfWeek     []int   `json:"daysOfWeek,omitempty"` // 0=Monday .. 6=Sunday
	EndDate        *string `json:"endDate,omitempty"`
	MaxOccurrences *int    `json:"maxOccurrences,omitempty"`
	RRule          string  `json:"rrule,omitempty"` // alternative to the explicit fields
}

type CreatePaymentRequest struct {
	Title       string        `json:"title"`
	Amount      float64       `json:"amount"`
	IsIncome    bool          `json:"isIncome"`
	IsRecurring bool          `json:"isRecurring"`
	Frequency   string        `json:"frequency"`
	DueDate     string        `json:"dueDate"`
	Category    string        `json:"category"`
	Emoji       string        `json:"emoji"`
	Rules       []RuleRequest `json:"rules,omitempty"`
}

type UpdatePaymentRequest struct {
	Title       *string  `json:"title,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	IsIncome    *bool    `json:"isIncome,omitempty"`
	IsRecurring *bool    `json:"isRecurring,omitempty"`
	Frequency   *string  `json:"frequency,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Emoji       *string  `json:"emoji,omitempty"`
}

type MarkPaidRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

// HandlePayments handles GET (list) and POST (create) on /api/payments
func (h *PaymentHandler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PaymentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListPayments(r.Context())
	if err != nil {
		log.Printf("Error listing payments: %v", err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		http.Error(w, "Invalid dueDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	rules, err := toRuleParams(req.Rules)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.paymentService.CreatePayment(r.Context(), payment.CreateParams{
		Title:       req.Title,
		Amount:      req.Amount,
		IsIncome:    req.IsIncome,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		DueDate:     dueDate,
		Category:    req.Category,
		Emoji:       req.Emoji,
		Rules:       rules,
	})
	if err != nil {
		if errors.Is(err, payment.ErrInvalidInput) || errors.Is(err, payment.ErrInvalidRecurrence) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating payment %q: %v", req.Title, err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// HandlePaymentByID handles GET/PUT/DELETE on /api/payments/{id}
func (h *PaymentHandler) HandlePaymentByID(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.paymentService.GetPayment(r.Context(), id)
		if err != nil {
			h.respondPaymentError(w, id, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPut:
		h.handleUpdate(w, r, id)

	case http.MethodDelete:
		if err := h.paymentService.DeletePayment(r.Context(), id); err != nil {
			log.Printf("Error deleting payment %d: %v", id, err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PaymentHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := payment.UpdateParams{
		Title:       req.Title,
		Amount:      req.Amount,
		IsIncome:    req.IsIncome,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		Category:    req.Category,
		Emoji:       req.Emoji,
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			http.Error(w, "Invalid dueDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.DueDate = &dueDate
	}

	p, err := h.paymentService.UpdatePayment(r.Context(), id, params)
	if err != nil {
		h.respondPaymentError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleRules handles GET (list) and POST (attach) on /api/payments/{id}/rules
func (h *PaymentHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		rules, err := h.paymentService.ListRules(r.Context(), id)
		if err != nil {
			h.respondPaymentError(w, id, err)
			return
		}
		writeJSON(w, http.StatusOK, rules)

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		var req RuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		params, err := toRuleParam(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rule, err := h.paymentService.AddRule(r.Context(), id, params)
		if err != nil {
			h.respondPaymentError(w, id, err)
			return
		}
		writeJSON(w, http.StatusCreated, rule)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRuleByID handles PUT (active toggle) and DELETE on
// /api/payments/{id}/rules/{ruleID}
func (h *PaymentHandler) HandleRuleByID(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	ruleID, err := strconv.ParseInt(r.PathValue("ruleID"), 10, 64)
	if err != nil || ruleID <= 0 {
		http.Error(w, "Invalid rule ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		var req struct {
			IsActive *bool `json:"isActive"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		rule, err := h.paymentService.SetRuleActive(r.Context(), id, ruleID, *req.IsActive)
		if err != nil {
			h.respondPaymentError(w, id, err)
			return
		}
		writeJSON(w, http.StatusOK, rule)

	case http.MethodDelete:
		if err := h.paymentService.RemoveRule(r.Context(), id, ruleID); err != nil {
			h.respondPaymentError(w, id, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMarkPaid handles POST /api/payments/{id}/paid
func (h *PaymentHandler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req MarkPaidRequest
	// An empty body means "mark paid as of today".
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "Invalid date format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	txn, err := h.lifecycle.MarkPaid(r.Context(), id, date)
	if err != nil {
		h.respondPaymentError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// HandleMarkUnpaid handles POST /api/payments/{id}/unpaid
func (h *PaymentHandler) HandleMarkUnpaid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	if err := h.lifecycle.MarkUnpaid(r.Context(), id); err != nil {
		h.respondPaymentError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleOccurrences handles GET /api/payments/occurrences?start=...&end=...
func (h *PaymentHandler) HandleOccurrences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start, end, err := occurrenceWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	occs, err := h.paymentService.Occurrences(r.Context(), start, end)
	if err != nil {
		log.Printf("Error expanding occurrences: %v", err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, occs)
}

// HandlePaymentOccurrences handles GET /api/payments/{id}/occurrences
func (h *PaymentHandler) HandlePaymentOccurrences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	start, end, err := occurrenceWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	occs, err := h.paymentService.OccurrencesForPayment(r.Context(), id, start, end)
	if err != nil {
		h.respondPaymentError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, occs)
}

// --- Helpers ---

func (h *PaymentHandler) respondPaymentError(w http.ResponseWriter, id int64, err error) {
	switch {
	case errors.Is(err, payment.ErrPaymentNotFound):
		http.Error(w, messages.PaymentNotFound, http.StatusNotFound)
	case errors.Is(err, payment.ErrRuleNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, payment.ErrNotPersisted):
		http.Error(w, messages.NotPersisted, http.StatusBadRequest)
	case errors.Is(err, payment.ErrInvalidInput), errors.Is(err, payment.ErrInvalidRecurrence):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Payment %d: %v", id, err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
	}
}

func paymentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// occurrenceWindow parses the start/end query parameters, defaulting to the
// next 30 days from today.
func occurrenceWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid start format (use YYYY-MM-DD)")
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid end format (use YYYY-MM-DD)")
		}
		end = parsed
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end must not be before start")
	}
	return start, end, nil
}

func toRuleParams(reqs []RuleRequest) ([]payment.RuleParams, error) {
	params := make([]payment.RuleParams, 0, len(reqs))
	for _, req := range reqs {
		p, err := toRuleParam(req)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func toRuleParam(req RuleRequest) (payment.RuleParams, error) {
	if req.RRule != "" {
		return payment.ParseRRule(req.RRule)
	}

	params := payment.RuleParams{
		Type:           req.RecurrenceType,
		Interval:       req.Interval,
		DayOfMonth:     req.DayOfMonth,
		MaxOccurrences: req.MaxOccurrences,
	}

	for _, d := range req.DaysOfWeek {
		if d < 0 || d > 6 {
			return payment.RuleParams{}, errors.New("daysOfWeek entries must be 0 (Monday) to 6 (Sunday)")
		}
		// Wire format is Monday-first; time.Weekday is Sunday-first.
		params.DaysOfWeek = append(params.DaysOfWeek, time.Weekday((d+1)%7))
	}

	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return payment.RuleParams{}, errors.New("invalid endDate format (use YYYY-MM-DD)")
		}
		params.EndDate = &endDate
	}

	return params, nil
}
