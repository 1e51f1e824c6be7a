package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"centavo/internal/domain/backup"
	"centavo/internal/shared/messages"
)

// Backup documents can be large; allow more than the regular request cap.
const maxBackupBodySize = 32 << 20 // 32 MiB

type BackupHandler struct {
	backupService *backup.Service
}

func NewBackupHandler(backupService *backup.Service) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// HandleExport handles GET /api/backup/export
func (h *BackupHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	doc, err := h.backupService.Export(r.Context())
	if err != nil {
		log.Printf("Error exporting backup: %v", err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="centavo-backup.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// HandleImport handles POST /api/backup/import
func (h *BackupHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBackupBodySize)
	var doc backup.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, messages.InvalidBackup, http.StatusBadRequest)
		return
	}

	result, err := h.backupService.Import(r.Context(), &doc)
	if err != nil {
		if errors.Is(err, backup.ErrUnsupportedVersion) || errors.Is(err, backup.ErrEmptyDocument) {
			http.Error(w, messages.InvalidBackup, http.StatusBadRequest)
			return
		}
		log.Printf("Error importing backup %s: %v", doc.ID, err)
		http.Error(w, messages.Internal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
