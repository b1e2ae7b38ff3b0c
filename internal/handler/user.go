package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
)

const searchLimit = 20

type UserHandler struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserHandler(us store.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: us, logger: logger}
}

// Search handles GET /api/users/search?q=, matching against username and
// full name for linking family members to platform accounts.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusOK, []model.UserSummary{})
		return
	}

	users, err := h.users.Search(q, searchLimit)
	if err != nil {
		h.logger.Error("search users", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to search users"})
		return
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	writeJSON(w, http.StatusOK, users)
}
