package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mwhitten/memento/internal/auth"
	"github.com/mwhitten/memento/internal/category"
	"github.com/mwhitten/memento/internal/store"
)

type CategoryHandler struct {
	memories store.MemoryStore
	logger   *slog.Logger
}

func NewCategoryHandler(ms store.MemoryStore, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{memories: ms, logger: logger}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, category.All())
}

// Prompts handles GET /api/categories/{id}/prompts
func (h *CategoryHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil || category.Get(id) == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}
	writeJSON(w, http.StatusOK, category.Prompts(id))
}

// Languages handles GET /api/languages. Public, read before login.
func (h *CategoryHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, category.Languages)
}

// DailyPrompt handles GET /api/prompts/daily
func (h *CategoryHandler) DailyPrompt(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, category.Daily(time.Now()))
}

// Progress handles GET /api/categories/{id}/progress. Raw counts; the client
// does the percentage math.
func (h *CategoryHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil || category.Get(id) == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}

	memories, err := h.memories.ListByUserAndCategory(auth.UserID(r.Context()), id)
	if err != nil {
		h.logger.Error("category progress", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute progress"})
		return
	}

	writeJSON(w, http.StatusOK, category.Progress{
		Answered: len(memories),
		Total:    len(category.Prompts(id)),
	})
}
