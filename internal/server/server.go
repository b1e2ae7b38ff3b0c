// Package server wires stores, handlers, and middleware into the HTTP
// surface. The memory journal API lives under /api/; everything except
// registration, login, languages, and health sits behind the session gate.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mwhitten/memento/internal/backup"
	"github.com/mwhitten/memento/internal/handler"
	"github.com/mwhitten/memento/internal/middleware"
	"github.com/mwhitten/memento/internal/push"
	"github.com/mwhitten/memento/internal/store"
	"github.com/mwhitten/memento/internal/store/sqlite"
	ws "github.com/mwhitten/memento/internal/websocket"
)

// Config holds the server-level settings taken from the application config.
type Config struct {
	SessionTTL      time.Duration
	StaticDir       string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string
	Backup          backup.Config
}

type Server struct {
	stores        *store.Store
	hub           *ws.Hub
	authH         *handler.AuthHandler
	memoryH       *handler.MemoryHandler
	familyMemberH *handler.FamilyMemberHandler
	userH         *handler.UserHandler
	categoryH     *handler.CategoryHandler
	pushH         *handler.PushHandler
	backupH       *handler.BackupHandler
	rateLimiter   *middleware.RateLimiter
	pushScheduler *push.Scheduler
	backupManager *backup.Manager
	staticDir     string
	logger        *slog.Logger
}

// New assembles the server. db is nil for the in-memory backend; push
// reminders and backups need the durable backend and stay unmounted without
// it.
func New(stores *store.Store, db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	s := &Server{
		stores:        stores,
		hub:           hub,
		authH:         handler.NewAuthHandler(stores.Users, stores.Sessions, cfg.SessionTTL, logger.With("component", "auth")),
		memoryH:       handler.NewMemoryHandler(stores.Memories, hub, logger.With("component", "memory")),
		familyMemberH: handler.NewFamilyMemberHandler(stores.FamilyMembers, hub, logger.With("component", "family_member")),
		userH:         handler.NewUserHandler(stores.Users, logger.With("component", "user")),
		categoryH:     handler.NewCategoryHandler(stores.Memories, logger.With("component", "category")),
		rateLimiter:   middleware.NewRateLimiter(),
		staticDir:     cfg.StaticDir,
		logger:        logger,
	}

	if db != nil {
		if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
			pushStore := sqlite.NewPushStore(db)
			pushSvc := push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushSubscriber)
			s.pushScheduler = push.NewScheduler(pushSvc, pushStore)
			s.pushH = handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push"))
		}

		backupStore := sqlite.NewBackupStore(db)
		mgr := backup.NewManager(cfg.Backup, db, backupStore)
		if mgr.Enabled() {
			s.backupManager = mgr
			s.backupH = handler.NewBackupHandler(mgr, backupStore, logger.With("component", "backup"))
		}
	}

	return s
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() store.SessionStore {
	return s.stores.Sessions
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// PushScheduler returns the reminder scheduler, or nil when push is disabled.
func (s *Server) PushScheduler() *push.Scheduler {
	return s.pushScheduler
}

// BackupManager returns the backup manager, or nil when backups are disabled.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /api/languages", s.categoryH.Languages)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.stores.Sessions, s.stores.Users)
	outerMux.Handle("/api/", authMiddleware(protectedMux))
	outerMux.Handle("GET /ws", authMiddleware(ws.HandleWebSocket(s.hub)))

	if s.staticDir != "" {
		if _, err := os.Stat(s.staticDir); err == nil {
			outerMux.Handle("GET /", spaHandler(s.staticDir))
		}
	}

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Auth routes that require authentication
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/user", s.authH.CurrentUser)

	// Memory API routes. The literal "shared" pattern wins over {categoryId}.
	mux.HandleFunc("GET /api/memories", s.memoryH.List)
	mux.HandleFunc("POST /api/memories", s.memoryH.Create)
	mux.HandleFunc("GET /api/memories/shared", s.memoryH.Shared)
	mux.HandleFunc("GET /api/memories/{categoryId}", s.memoryH.ListByCategory)
	mux.HandleFunc("DELETE /api/memories/{id}", s.memoryH.Delete)

	// Family tree API routes
	mux.HandleFunc("GET /api/family-members", s.familyMemberH.List)
	mux.HandleFunc("POST /api/family-members", s.familyMemberH.Create)
	mux.HandleFunc("PATCH /api/family-members/{id}/position", s.familyMemberH.UpdatePosition)
	mux.HandleFunc("POST /api/family-members/{id}/link", s.familyMemberH.Link)

	// User search for platform linking
	mux.HandleFunc("GET /api/users/search", s.userH.Search)

	// Category and prompt API routes
	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("GET /api/categories/{id}/prompts", s.categoryH.Prompts)
	mux.HandleFunc("GET /api/categories/{id}/progress", s.categoryH.Progress)
	mux.HandleFunc("GET /api/prompts/daily", s.categoryH.DailyPrompt)

	// Push notification API routes
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
		mux.HandleFunc("GET /api/push/preferences", s.pushH.GetPreferences)
		mux.HandleFunc("PUT /api/push/preferences", s.pushH.UpdatePreferences)
	}

	// Backup API routes
	if s.backupH != nil {
		mux.HandleFunc("POST /api/backup/run", s.backupH.Run)
		mux.HandleFunc("GET /api/backup/status", s.backupH.Status)
	}
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes survive a refresh.
func spaHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() && r.URL.Path != "/" {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}
