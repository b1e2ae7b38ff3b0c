package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mwhitten/memento/internal/auth"
	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
	"github.com/mwhitten/memento/internal/validate"
	"github.com/mwhitten/memento/internal/websocket"
)

type FamilyMemberHandler struct {
	members store.FamilyMemberStore
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewFamilyMemberHandler(fs store.FamilyMemberStore, hub *websocket.Hub, logger *slog.Logger) *FamilyMemberHandler {
	return &FamilyMemberHandler{members: fs, hub: hub, logger: logger}
}

// List handles GET /api/family-members
func (h *FamilyMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list family members", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list family members"})
		return
	}
	if members == nil {
		members = []model.FamilyMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

type createFamilyMemberRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

// Create handles POST /api/family-members. New members start at the default
// canvas position with no platform link.
func (h *FamilyMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFamilyMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	member, err := h.members.Create(auth.UserID(r.Context()), req.Name, req.DateOfBirth)
	if err != nil {
		h.logger.Error("create family member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create family member"})
		return
	}

	h.hub.NotifyFamilyMember("created", member.ID)
	writeJSON(w, http.StatusCreated, member)
}

type updatePositionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UpdatePosition handles PATCH /api/family-members/{id}/position. Updating
// an absent id succeeds without effect.
func (h *FamilyMemberHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req updatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.members.UpdatePosition(id, req.X, req.Y); err != nil {
		h.logger.Error("update family member position", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update position"})
		return
	}

	member, err := h.members.GetByID(id)
	if err != nil {
		h.logger.Error("get family member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update position"})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	h.hub.NotifyFamilyMember("updated", member.ID)
	writeJSON(w, http.StatusOK, member)
}

type linkMemberRequest struct {
	PlatformUserID int64 `json:"platformUserId" validate:"required"`
}

// Link handles POST /api/family-members/{id}/link. Linking an absent member
// id succeeds without effect.
func (h *FamilyMemberHandler) Link(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req linkMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.members.LinkToUser(id, req.PlatformUserID); err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown platform user"})
			return
		}
		h.logger.Error("link family member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to link family member"})
		return
	}

	member, err := h.members.GetByID(id)
	if err != nil {
		h.logger.Error("get family member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to link family member"})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	h.hub.NotifyFamilyMember("linked", member.ID)
	writeJSON(w, http.StatusOK, member)
}
