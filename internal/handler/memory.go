package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mwhitten/memento/internal/auth"
	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
	"github.com/mwhitten/memento/internal/validate"
	"github.com/mwhitten/memento/internal/websocket"
)

const defaultSharedLimit = 50

type MemoryHandler struct {
	memories store.MemoryStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewMemoryHandler(ms store.MemoryStore, hub *websocket.Hub, logger *slog.Logger) *MemoryHandler {
	return &MemoryHandler{memories: ms, hub: hub, logger: logger}
}

// List handles GET /api/memories
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	memories, err := h.memories.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list memories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list memories"})
		return
	}
	if memories == nil {
		memories = []model.Memory{}
	}
	writeJSON(w, http.StatusOK, memories)
}

// ListByCategory handles GET /api/memories/{categoryId}
func (h *MemoryHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.PathValue("categoryId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}

	memories, err := h.memories.ListByUserAndCategory(auth.UserID(r.Context()), categoryID)
	if err != nil {
		h.logger.Error("list memories by category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list memories"})
		return
	}
	if memories == nil {
		memories = []model.Memory{}
	}
	writeJSON(w, http.StatusOK, memories)
}

// Shared handles GET /api/memories/shared: everyone's memories, newest first.
func (h *MemoryHandler) Shared(w http.ResponseWriter, r *http.Request) {
	limit := defaultSharedLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	memories, err := h.memories.ListShared(limit)
	if err != nil {
		h.logger.Error("list shared memories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list memories"})
		return
	}
	if memories == nil {
		memories = []model.Memory{}
	}
	writeJSON(w, http.StatusOK, memories)
}

type createMemoryRequest struct {
	CategoryID int64   `json:"categoryId" validate:"required"`
	Title      string  `json:"title"      validate:"required,max=200"`
	Content    string  `json:"content"    validate:"required"`
	ImageURL   *string `json:"imageUrl"`
}

// Create handles POST /api/memories
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// The category set lives in the client; any id is stored as-is.
	memory, err := h.memories.Create(auth.UserID(r.Context()), req.CategoryID, req.Title, req.Content, req.ImageURL)
	if err != nil {
		h.logger.Error("create memory", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create memory"})
		return
	}

	h.hub.NotifyMemory("created", memory.ID, memory.CategoryID)
	writeJSON(w, http.StatusCreated, memory)
}

// Delete handles DELETE /api/memories/{id}. Deleting an absent id is a no-op.
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.memories.Delete(id); err != nil {
		h.logger.Error("delete memory", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete memory"})
		return
	}

	h.hub.NotifyMemory("deleted", id, 0)
	w.WriteHeader(http.StatusNoContent)
}
