package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"centavo/internal/domain/payment"
)

// OccurrenceWatchHandler streams planned-occurrence snapshots over
// server-sent events. Each snapshot is the full occurrence set for the
// requested window; clients replace their view rather than patching it.
type OccurrenceWatchHandler struct {
	aggregator *payment.Aggregator
	subscribe  func() (<-chan struct{}, func())
}

func NewOccurrenceWatchHandler(aggregator *payment.Aggregator, subscribe func() (<-chan struct{}, func())) *OccurrenceWatchHandler {
	return &OccurrenceWatchHandler{aggregator: aggregator, subscribe: subscribe}
}

// HandleWatch handles GET /api/payments/occurrences/watch
func (h *OccurrenceWatchHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	start, end, err := occurrenceWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Streams outlive the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("Failed to clear write deadline for occurrence stream: %v", err)
	}

	changes, unsubscribe := h.subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	snapshots := h.aggregator.Watch(r.Context(), changes, start, end)
	for occs := range snapshots {
		data, err := json.Marshal(occs)
		if err != nil {
			log.Printf("Failed to encode occurrence snapshot: %v", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}
