package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"centavo/internal/domain/pin"
	"centavo/internal/shared/messages"
)

type PinHandler struct {
	pinService *pin.Service
}

func NewPinHandler(pinService *pin.Service) *PinHandler {
	return &PinHandler{pinService: pinService}
}

type PinRequest struct {
	Pin string `json:"pin"`
}

type VerifyPinResponse struct {
	Status            string `json:"status"` // ok, failed, or locked
	AttemptsRemaining int    `json:"attemptsRemaining,omitempty"`
	LockedUntil       string `json:"lockedUntil,omitempty"`
}

// HandlePin handles GET (status) and PUT (set) on /api/pin
func (h *PinHandler) HandlePin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		set, err := h.pinService.IsSet(r.Context())
		if err != nil {
			log.Printf("Error checking pin status: %v", err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"isSet": set})

	case http.MethodPut:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		var req PinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.pinService.SetPIN(r.Context(), req.Pin); err != nil {
			if errors.Is(err, pin.ErrInvalidPIN) {
				http.Error(w, messages.PinInvalid, http.StatusBadRequest)
				return
			}
			log.Printf("Error setting pin: %v", err)
			http.Error(w, messages.Internal, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleVerify handles POST /api/pin/verify
func (h *PinHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.pinService.Verify(r.Context(), req.Pin)
	if err != nil {
		if errors.Is(err, pin.ErrNoPINSet) {
			http.Error(w, messages.PinNotSet, http.StatusConflict)
			return
		}
		log.Printf("Error verifying pin: %v", err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	switch res := result.(type) {
	case pin.Success:
		writeJSON(w, http.StatusOK, VerifyPinResponse{Status: "ok"})
	case pin.Failed:
		writeJSON(w, http.StatusUnauthorized, VerifyPinResponse{
			Status:            "failed",
			AttemptsRemaining: res.AttemptsRemaining,
		})
	case pin.LockedOut:
		writeJSON(w, http.StatusTooManyRequests, VerifyPinResponse{
			Status:      "locked",
			LockedUntil: res.Until.Format("2006-01-02T15:04:05Z07:00"),
		})
	default:
		log.Printf("Unexpected pin verify result %T", result)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
	}
}
