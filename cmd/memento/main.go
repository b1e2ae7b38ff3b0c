package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mwhitten/memento/internal/backup"
	"github.com/mwhitten/memento/internal/config"
	"github.com/mwhitten/memento/internal/database"
	"github.com/mwhitten/memento/internal/logging"
	"github.com/mwhitten/memento/internal/server"
	"github.com/mwhitten/memento/internal/store"
	"github.com/mwhitten/memento/internal/store/memstore"
	"github.com/mwhitten/memento/internal/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	var (
		stores *store.Store
		db     *sql.DB
	)
	switch cfg.Storage.Backend {
	case "sqlite":
		db, err = database.Open(cfg.Storage.DBPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		stores = sqlite.New(db, cfg.Auth.SessionTTL)
	case "memory":
		logger.Warn("using the in-memory backend, all data is lost on exit")
		stores = memstore.New(cfg.Auth.SessionTTL).Stores()
	}

	srv := server.New(stores, db, server.Config{
		SessionTTL:      cfg.Auth.SessionTTL,
		StaticDir:       cfg.Server.StaticDir,
		VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
		PushSubscriber:  cfg.Push.Subscriber,
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  cfg.Backup.Endpoint,
				Bucket:    cfg.Backup.Bucket,
				Region:    cfg.Backup.Region,
				AccessKey: cfg.Backup.AccessKey,
				SecretKey: cfg.Backup.SecretKey,
			},
			Passphrase: cfg.Backup.Passphrase,
			Keep:       cfg.Backup.Keep,
			Hour:       cfg.Backup.Hour,
		},
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sched := srv.PushScheduler(); sched != nil {
		sched.Start(ctx)
		defer sched.Stop()
		logger.Info("push reminder scheduler started")
	}
	if mgr := srv.BackupManager(); mgr != nil {
		mgr.Start(ctx)
		defer mgr.Stop()
		logger.Info("backup manager started", "hour", cfg.Backup.Hour)
	}

	go cleanupLoop(ctx, srv, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("memento running", "addr", "http://localhost:"+cfg.Server.Port, "backend", cfg.Storage.Backend)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

// cleanupLoop prunes expired sessions and stale rate-limit entries.
func cleanupLoop(ctx context.Context, srv *server.Server, logger *slog.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := srv.SessionStore().DeleteExpired()
			if err != nil {
				logger.Error("session cleanup failed", "error", err)
			} else if n > 0 {
				logger.Info("expired sessions removed", "count", n)
			}
			srv.RateLimiter().Cleanup()
		}
	}
}
