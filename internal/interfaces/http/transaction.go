package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"centavo/internal/domain/transaction"
	"centavo/internal/shared/messages"
)

type TransactionHandler struct {
	transactionService *transaction.Service
}

func NewTransactionHandler(transactionService *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type CreateTransactionRequest struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"` // INCOME or EXPENSE
	Category string  `json:"category"`
	Emoji    string  `json:"emoji"`
	Date     string  `json:"date"`
}

type UpdateTransactionRequest struct {
	Title    *string  `json:"title,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Category *string  `json:"category,omitempty"`
	Emoji    *string  `json:"emoji,omitempty"`
	Date     *string  `json:"date,omitempty"`
}

// HandleTransactions handles GET (list) and POST (create) on /api/transactions
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	txns, err := h.transactionService.ListTransactions(r.Context(), limit, offset)
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "Invalid date format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	txn, err := h.transactionService.CreateTransaction(r.Context(), transaction.CreateParams{
		Title:    req.Title,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		Emoji:    req.Emoji,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidInput) || errors.Is(err, transaction.ErrInvalidType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating transaction %q: %v", req.Title, err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

// HandleTransactionByID handles GET/PUT/DELETE on /api/transactions/{id}
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid transaction ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		txn, err := h.transactionService.GetTransaction(r.Context(), id)
		if err != nil {
			if errors.Is(err, transaction.ErrTransactionNotFound) {
				http.Error(w, messages.TransactionMissing, http.StatusNotFound)
				return
			}
			log.Printf("Error getting transaction %d: %v", id, err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, txn)

	case http.MethodPut:
		h.handleUpdate(w, r, id)

	case http.MethodDelete:
		if err := h.transactionService.DeleteTransaction(r.Context(), id); err != nil {
			log.Printf("Error deleting transaction %d: %v", id, err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := transaction.UpdateParams{
		Title:    req.Title,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		Emoji:    req.Emoji,
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			http.Error(w, "Invalid date format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.Date = &date
	}

	txn, err := h.transactionService.UpdateTransaction(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidInput) || errors.Is(err, transaction.ErrInvalidType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error updating transaction %d: %v", id, err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}
	if txn == nil {
		http.Error(w, messages.TransactionMissing, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// HandleBalance handles GET /api/transactions/balance
func (h *TransactionHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	balance, err := h.transactionService.GetBalance(r.Context())
	if err != nil {
		log.Printf("Error computing balance: %v", err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"balance": balance})
}
