package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwhitten/memento/internal/model"
)

func TestUserSearch(t *testing.T) {
	st := setupStores(t)
	h := NewUserHandler(st.Users, slog.Default())

	st.Users.Create("marie", "hash", "Marie Dubois", "1952-01-01")
	st.Users.Create("jean", "hash", "Jean Dubois", "1949-01-01")
	st.Users.Create("alice", "hash", "Alice Martin", "1950-01-01")

	rec := httptest.NewRecorder()
	h.Search(rec, authedRequest("GET", "/api/users/search?q=dubois", nil, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []model.UserSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, u := range got {
		if u.FullName != "Marie Dubois" && u.FullName != "Jean Dubois" {
			t.Errorf("unexpected match %+v", u)
		}
	}
}

func TestUserSearchEmptyQuery(t *testing.T) {
	st := setupStores(t)
	h := NewUserHandler(st.Users, slog.Default())

	st.Users.Create("marie", "hash", "Marie Dubois", "1952-01-01")

	rec := httptest.NewRecorder()
	h.Search(rec, authedRequest("GET", "/api/users/search?q=", nil, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty array", body)
	}
}
