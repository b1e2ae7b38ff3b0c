package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mwhitten/memento/internal/database"
	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store/sqlite"
)

func TestCreateFamilyMemberDefaults(t *testing.T) {
	st := setupStores(t)
	h := NewFamilyMemberHandler(st.FamilyMembers, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	body := `{"name":"Grandma Rose","dateOfBirth":"1931-05-20"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/family-members", strings.NewReader(body), userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var member model.FamilyMember
	if err := json.Unmarshal(rec.Body.Bytes(), &member); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if member.X != 100 || member.Y != 100 {
		t.Errorf("position = (%d, %d), want (100, 100)", member.X, member.Y)
	}
	if member.PlatformUserID != nil {
		t.Error("expected no platform link on creation")
	}
	if member.UserID != userID {
		t.Errorf("userId = %d, want %d", member.UserID, userID)
	}
}

func TestCreateFamilyMemberValidation(t *testing.T) {
	st := setupStores(t)
	h := NewFamilyMemberHandler(st.FamilyMembers, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	for _, body := range []string{
		`{"dateOfBirth":"1931-05-20"}`,
		`{"name":"Rose"}`,
		`{"name":"Rose","dateOfBirth":"May 1931"}`,
	} {
		rec := httptest.NewRecorder()
		h.Create(rec, authedRequest("POST", "/api/family-members", strings.NewReader(body), userID))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestUpdatePosition(t *testing.T) {
	st := setupStores(t)
	h := NewFamilyMemberHandler(st.FamilyMembers, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	member, err := st.FamilyMembers.Create(userID, "Rose", "1931-05-20")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	req := authedRequest("PATCH", "/api/family-members/1/position", strings.NewReader(`{"x":250,"y":-40}`), userID)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.UpdatePosition(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got model.FamilyMember
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.X != 250 || got.Y != -40 {
		t.Errorf("position = (%d, %d), want (250, -40)", got.X, got.Y)
	}

	stored, _ := st.FamilyMembers.GetByID(member.ID)
	if stored.X != 250 || stored.Y != -40 {
		t.Errorf("stored position = (%d, %d), want (250, -40)", stored.X, stored.Y)
	}
}

func TestUpdatePositionAbsentMember(t *testing.T) {
	st := setupStores(t)
	h := NewFamilyMemberHandler(st.FamilyMembers, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	req := authedRequest("PATCH", "/api/family-members/99/position", strings.NewReader(`{"x":1,"y":2}`), userID)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.UpdatePosition(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (silent no-op)", rec.Code, http.StatusOK)
	}
}

func TestLinkFamilyMember(t *testing.T) {
	st := setupStores(t)
	h := NewFamilyMemberHandler(st.FamilyMembers, testHub(), slog.Default())
	alice := mustCreateUser(t, st, "alice")
	bob := mustCreateUser(t, st, "bob")

	member, err := st.FamilyMembers.Create(alice, "Bob the Uncle", "1948-07-01")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	body := strings.NewReader(`{"platformUserId":` + strconv.FormatInt(bob, 10) + `}`)
	req := authedRequest("POST", "/api/family-members/1/link", body, alice)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Link(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got model.FamilyMember
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.PlatformUserID == nil || *got.PlatformUserID != bob {
		t.Errorf("platformUserId = %v, want %d", got.PlatformUserID, bob)
	}

	stored, _ := st.FamilyMembers.GetByID(member.ID)
	if stored.PlatformUserID == nil || *stored.PlatformUserID != bob {
		t.Errorf("stored platformUserId = %v, want %d", stored.PlatformUserID, bob)
	}
}

func TestLinkUnknownPlatformUserSQLite(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	st := sqlite.New(db, time.Hour)

	h := NewFamilyMemberHandler(st.FamilyMembers, testHub(), slog.Default())
	alice := mustCreateUser(t, st, "alice")

	member, err := st.FamilyMembers.Create(alice, "Bob the Uncle", "1948-07-01")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	req := authedRequest("POST", "/api/family-members/1/link", strings.NewReader(`{"platformUserId":999}`), alice)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Link(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unknown platform user") {
		t.Errorf("body = %s, want unknown platform user error", rec.Body.String())
	}

	stored, _ := st.FamilyMembers.GetByID(member.ID)
	if stored.PlatformUserID != nil {
		t.Errorf("platformUserId = %v, want nil after rejected link", *stored.PlatformUserID)
	}
}
