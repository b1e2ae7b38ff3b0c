package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mwhitten/memento/internal/category"
	"github.com/mwhitten/memento/internal/model"
)

func TestCreateAndListMemories(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	body := `{"categoryId":1,"title":"First day of school","content":"I remember the walk there."}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/memories", strings.NewReader(body), userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created model.Memory
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.UserID != userID {
		t.Errorf("userId = %d, want %d", created.UserID, userID)
	}
	if created.CategoryID != 1 {
		t.Errorf("categoryId = %d, want 1", created.CategoryID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected createdAt to be assigned")
	}

	rec = httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/api/memories", nil, userID))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var listed []model.Memory
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("expected the created memory, got %+v", listed)
	}
}

func TestCreateMemoryValidation(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"categoryId":1,"content":"text"}`},
		{"missing content", `{"categoryId":1,"title":"t"}`},
		{"missing category", `{"title":"t","content":"text"}`},
		{"invalid json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest("POST", "/api/memories", strings.NewReader(tc.body), userID))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreateMemoryAcceptsAnyCategoryID(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	body := `{"categoryId":99,"title":"t","content":"text"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/memories", strings.NewReader(body), userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created model.Memory
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.CategoryID != 99 {
		t.Errorf("categoryId = %d, want 99", created.CategoryID)
	}
}

func TestListMemoriesScopedToUser(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	alice := mustCreateUser(t, st, "alice")
	bob := mustCreateUser(t, st, "bob")

	if _, err := st.Memories.Create(alice, 1, "Alice's", "content", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.Memories.Create(bob, 1, "Bob's", "content", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/api/memories", nil, alice))
	var listed []model.Memory
	json.Unmarshal(rec.Body.Bytes(), &listed)
	if len(listed) != 1 || listed[0].Title != "Alice's" {
		t.Errorf("expected only alice's memory, got %+v", listed)
	}
}

func TestListByCategory(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	st.Memories.Create(userID, 1, "childhood", "content", nil)
	st.Memories.Create(userID, 2, "school", "content", nil)

	req := authedRequest("GET", "/api/memories/2", nil, userID)
	req.SetPathValue("categoryId", "2")
	rec := httptest.NewRecorder()
	h.ListByCategory(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listed []model.Memory
	json.Unmarshal(rec.Body.Bytes(), &listed)
	if len(listed) != 1 || listed[0].Title != "school" {
		t.Errorf("expected only the category-2 memory, got %+v", listed)
	}

	// Non-numeric id is rejected
	req = authedRequest("GET", "/api/memories/abc", nil, userID)
	req.SetPathValue("categoryId", "abc")
	rec = httptest.NewRecorder()
	h.ListByCategory(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSharedFeed(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	alice := mustCreateUser(t, st, "alice")
	bob := mustCreateUser(t, st, "bob")

	st.Memories.Create(alice, 1, "older", "content", nil)
	st.Memories.Create(bob, 2, "newer", "content", nil)

	rec := httptest.NewRecorder()
	h.Shared(rec, authedRequest("GET", "/api/memories/shared", nil, alice))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listed []model.Memory
	json.Unmarshal(rec.Body.Bytes(), &listed)
	if len(listed) != 2 {
		t.Fatalf("expected 2 memories in the shared feed, got %d", len(listed))
	}
	if listed[0].Title != "newer" {
		t.Errorf("expected newest first, got %q", listed[0].Title)
	}

	rec = httptest.NewRecorder()
	h.Shared(rec, authedRequest("GET", "/api/memories/shared?limit=1", nil, alice))
	json.Unmarshal(rec.Body.Bytes(), &listed)
	if len(listed) != 1 {
		t.Errorf("expected limit to apply, got %d memories", len(listed))
	}
}

func TestDeleteMemoryIdempotent(t *testing.T) {
	st := setupStores(t)
	h := NewMemoryHandler(st.Memories, testHub(), slog.Default())
	userID := mustCreateUser(t, st, "alice")

	m, _ := st.Memories.Create(userID, 1, "t", "c", nil)

	for i := 0; i < 2; i++ {
		req := authedRequest("DELETE", "/api/memories/1", nil, userID)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()
		h.Delete(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("delete %d: status = %d, want %d", i+1, rec.Code, http.StatusNoContent)
		}
	}

	remaining, _ := st.Memories.ListByUser(userID)
	for _, mem := range remaining {
		if mem.ID == m.ID {
			t.Error("memory should have been deleted")
		}
	}
}

func TestCategoryProgress(t *testing.T) {
	st := setupStores(t)
	h := NewCategoryHandler(st.Memories, slog.Default())
	userID := mustCreateUser(t, st, "alice")

	st.Memories.Create(userID, 3, "one", "c", nil)
	st.Memories.Create(userID, 3, "two", "c", nil)
	st.Memories.Create(userID, 1, "other category", "c", nil)

	req := authedRequest("GET", "/api/categories/3/progress", nil, userID)
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()
	h.Progress(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got category.Progress
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Answered != 2 {
		t.Errorf("answered = %d, want 2", got.Answered)
	}
	if got.Total != len(category.Prompts(3)) {
		t.Errorf("total = %d, want %d", got.Total, len(category.Prompts(3)))
	}

	// Unknown category is rejected
	req = authedRequest("GET", "/api/categories/99/progress", nil, userID)
	req.SetPathValue("id", "99")
	rec = httptest.NewRecorder()
	h.Progress(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
