package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mwhitten/memento/internal/model"
)

type MemoryStore struct {
	db *sql.DB
}

func NewMemoryStore(db *sql.DB) *MemoryStore {
	return &MemoryStore{db: db}
}

func scanMemory(scanner interface{ Scan(...any) error }) (*model.Memory, error) {
	var m model.Memory
	var imageURL sql.NullString
	err := scanner.Scan(&m.ID, &m.UserID, &m.CategoryID, &m.Title, &m.Content, &imageURL, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		m.ImageURL = &imageURL.String
	}
	return &m, nil
}

const memoryCols = `id, user_id, category_id, title, content, image_url, created_at`

func (s *MemoryStore) ListByUser(userID int64) ([]model.Memory, error) {
	rows, err := s.db.Query(
		`SELECT `+memoryCols+` FROM memories WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	defer rows.Close()
	return collectMemories(rows)
}

func (s *MemoryStore) ListByUserAndCategory(userID, categoryID int64) ([]model.Memory, error) {
	// Both conditions in one WHERE clause: this must stay the logical AND of
	// the two filters, matching the in-memory backend.
	rows, err := s.db.Query(
		`SELECT `+memoryCols+` FROM memories WHERE user_id = ? AND category_id = ? ORDER BY id`,
		userID, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list memories by category: %w", err)
	}
	defer rows.Close()
	return collectMemories(rows)
}

func (s *MemoryStore) ListShared(limit int) ([]model.Memory, error) {
	if limit <= 0 {
		// LIMIT -1 is unbounded in SQLite
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT `+memoryCols+` FROM memories ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list shared memories: %w", err)
	}
	defer rows.Close()
	return collectMemories(rows)
}

func (s *MemoryStore) Create(userID, categoryID int64, title, content string, imageURL *string) (*model.Memory, error) {
	var img sql.NullString
	if imageURL != nil {
		img = sql.NullString{String: *imageURL, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO memories (user_id, category_id, title, content, image_url) VALUES (?, ?, ?, ?, ?)`,
		userID, categoryID, title, content, img,
	)
	if err != nil {
		return nil, fmt.Errorf("insert memory: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+memoryCols+` FROM memories WHERE id = ?`, id)
	m, err := scanMemory(row)
	if err != nil {
		return nil, fmt.Errorf("get memory: %w", err)
	}
	return m, nil
}

func (s *MemoryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	return nil
}

func collectMemories(rows *sql.Rows) ([]model.Memory, error) {
	var out []model.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
