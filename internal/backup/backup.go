package backup

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store/sqlite"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup manager configuration. An empty Passphrase uploads
// plain snapshots; Keep bounds how many uploads are retained.
type Config struct {
	S3         S3Config
	Passphrase string
	Keep       int
	Hour       int
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"last_backup,omitempty"`
	LastKey    string     `json:"last_key,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"in_progress"`
}

// Manager snapshots the journal database and uploads it to S3-compatible
// storage, optionally encrypted.
type Manager struct {
	mu     sync.RWMutex
	cfg    Config
	status Status

	db      *sql.DB
	backups *sqlite.BackupStore
	client  s3Client

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a new backup manager. The manager stays disabled until
// bucket and credentials are configured.
func NewManager(cfg Config, db *sql.DB, bs *sqlite.BackupStore) *Manager {
	m := &Manager{
		cfg:     cfg,
		db:      db,
		backups: bs,
		status:  Status{State: StateDisabled},
	}

	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		m.client = newS3Client(cfg.S3)
		m.status.State = StateIdle
	}

	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether the manager has working S3 configuration.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client != nil
}

// Start begins the scheduled backup loop.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.status.State == StateDisabled {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.checkSchedule(ctx)
			}
		}
	}()
}

// Stop gracefully stops the backup manager.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}

func (m *Manager) checkSchedule(ctx context.Context) {
	now := time.Now().UTC()
	if now.Hour() != m.cfg.Hour || now.Minute() != 0 {
		return
	}

	if _, err := m.Run(ctx); err != nil {
		log.Printf("backup: scheduled backup failed: %v", err)
	}
}

// Run snapshots the database, optionally encrypts, uploads, records history,
// and prunes uploads beyond the retention count.
func (m *Manager) Run(ctx context.Context) (*model.Backup, error) {
	m.mu.RLock()
	client := m.client
	bucket := m.cfg.S3.Bucket
	m.mu.RUnlock()

	if client == nil {
		return nil, fmt.Errorf("backup not configured: S3 credentials missing")
	}

	m.setStatus(Status{State: StateRunning, InProgress: true})

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	encrypted := m.cfg.Passphrase != ""
	key := fmt.Sprintf("memento/backup-%s.db", timestamp)
	if encrypted {
		key += ".enc"
	}

	tmpDir := os.TempDir()
	snapshot := filepath.Join(tmpDir, fmt.Sprintf("memento-backup-%s.db", timestamp))
	defer os.Remove(snapshot)

	if err := m.snapshot(ctx, snapshot); err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, err
	}

	uploadPath := snapshot
	if encrypted {
		encFile := snapshot + ".enc"
		defer os.Remove(encFile)

		if err := EncryptFile(snapshot, encFile, m.cfg.Passphrase); err != nil {
			m.setStatus(Status{State: StateError, Error: err.Error()})
			return nil, fmt.Errorf("encrypt: %w", err)
		}
		uploadPath = encFile
	}

	f, err := os.Open(uploadPath)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(stat.Size()),
	})
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, fmt.Errorf("upload to s3: %w", err)
	}

	record, err := m.backups.Record(key, stat.Size(), encrypted)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, fmt.Errorf("record backup: %w", err)
	}

	if err := m.prune(ctx); err != nil {
		log.Printf("backup: prune failed: %v", err)
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now, LastKey: key})

	return record, nil
}

// snapshot writes a consistent copy of the live database to path.
func (m *Manager) snapshot(ctx context.Context, path string) error {
	quoted := strings.ReplaceAll(path, "'", "''")
	if _, err := m.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", quoted)); err != nil {
		return fmt.Errorf("vacuum into snapshot: %w", err)
	}
	return nil
}

// prune removes uploads beyond the retention count, oldest first.
func (m *Manager) prune(ctx context.Context) error {
	keep := m.cfg.Keep
	if keep <= 0 {
		keep = 14
	}

	old, err := m.backups.ListBeyond(keep)
	if err != nil {
		return fmt.Errorf("list old backups: %w", err)
	}

	m.mu.RLock()
	client := m.client
	bucket := m.cfg.S3.Bucket
	m.mu.RUnlock()

	for _, b := range old {
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(b.Key),
		}); err != nil {
			log.Printf("backup: failed to delete S3 object %s: %v", b.Key, err)
			continue
		}
		if err := m.backups.Delete(b.ID); err != nil {
			log.Printf("backup: failed to delete backup record %d: %v", b.ID, err)
		}
	}

	return nil
}
