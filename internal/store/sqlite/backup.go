package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mwhitten/memento/internal/model"
)

// BackupStore records completed backup uploads for history and retention.
type BackupStore struct {
	db *sql.DB
}

func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

func (s *BackupStore) Record(key string, sizeBytes int64, encrypted bool) (*model.Backup, error) {
	var enc int
	if encrypted {
		enc = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO backups (key, size_bytes, encrypted) VALUES (?, ?, ?)`,
		key, sizeBytes, enc,
	)
	if err != nil {
		return nil, fmt.Errorf("insert backup: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var b model.Backup
	err = s.db.QueryRow(
		`SELECT id, key, size_bytes, encrypted, created_at FROM backups WHERE id = ?`, id,
	).Scan(&b.ID, &b.Key, &b.SizeBytes, &enc, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get backup: %w", err)
	}
	b.Encrypted = enc != 0
	return &b, nil
}

func (s *BackupStore) List(limit int) ([]model.Backup, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, key, size_bytes, encrypted, created_at FROM backups ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var out []model.Backup
	for rows.Next() {
		var b model.Backup
		var enc int
		if err := rows.Scan(&b.ID, &b.Key, &b.SizeBytes, &enc, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		b.Encrypted = enc != 0
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListBeyond returns the backups beyond the newest keep entries, in the
// order the manager prunes them.
func (s *BackupStore) ListBeyond(keep int) ([]model.Backup, error) {
	rows, err := s.db.Query(
		`SELECT id, key, size_bytes, encrypted, created_at FROM backups
		 ORDER BY id DESC LIMIT -1 OFFSET ?`,
		keep,
	)
	if err != nil {
		return nil, fmt.Errorf("list old backups: %w", err)
	}
	defer rows.Close()

	var out []model.Backup
	for rows.Next() {
		var b model.Backup
		var enc int
		if err := rows.Scan(&b.ID, &b.Key, &b.SizeBytes, &enc, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		b.Encrypted = enc != 0
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *BackupStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM backups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	return nil
}
