package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwhitten/memento/internal/auth"
	"github.com/mwhitten/memento/internal/store"
	"github.com/mwhitten/memento/internal/store/memstore"
	"github.com/mwhitten/memento/internal/websocket"
)

func setupStores(t *testing.T) *store.Store {
	t.Helper()
	return memstore.New(time.Hour).Stores()
}

func testHub() *websocket.Hub {
	return websocket.NewHub(slog.Default())
}

// authedRequest builds a request carrying an authenticated user context, the
// way RequireAuth would hand it to a handler.
func authedRequest(method, target string, body io.Reader, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := auth.WithAuth(req.Context(), auth.AuthContext{UserID: userID})
	return req.WithContext(ctx)
}

func mustCreateUser(t *testing.T, st *store.Store, username string) int64 {
	t.Helper()
	u, err := st.Users.Create(username, "hash", "Test User", "1950-01-01")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u.ID
}
