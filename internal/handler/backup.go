package handler

import (
	"log/slog"
	"net/http"

	"github.com/mwhitten/memento/internal/backup"
	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store/sqlite"
)

const backupHistoryLimit = 10

type BackupHandler struct {
	manager *backup.Manager
	backups *sqlite.BackupStore
	logger  *slog.Logger
}

func NewBackupHandler(m *backup.Manager, bs *sqlite.BackupStore, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{manager: m, backups: bs, logger: logger}
}

// Run handles POST /api/backup/run: snapshot, upload, and prune now.
func (h *BackupHandler) Run(w http.ResponseWriter, r *http.Request) {
	record, err := h.manager.Run(r.Context())
	if err != nil {
		h.logger.Error("run backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "backup failed"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Status handles GET /api/backup/status
func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	history, err := h.backups.List(backupHistoryLimit)
	if err != nil {
		h.logger.Error("list backups", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get backup status"})
		return
	}
	if history == nil {
		history = []model.Backup{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  h.manager.Status(),
		"history": history,
	})
}
