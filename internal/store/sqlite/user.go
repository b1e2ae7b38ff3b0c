package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, username, password, full_name, date_of_birth`

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (s *UserStore) Create(username, passwordHash, fullName, dateOfBirth string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (username, password, full_name, date_of_birth) VALUES (?, ?, ?, ?)`,
		username, passwordHash, fullName, dateOfBirth,
	)
	if err != nil {
		// The unique index on username is the authoritative duplicate check.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, store.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) Search(query string, limit int) ([]model.UserSummary, error) {
	if limit <= 0 {
		// LIMIT -1 is unbounded in SQLite
		limit = -1
	}
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(
		`SELECT id, username, full_name FROM users
		 WHERE username LIKE ? ESCAPE '\' OR full_name LIKE ? ESCAPE '\'
		 ORDER BY id LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var out []model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
