package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mwhitten/memento/internal/model"
)

type FamilyMemberStore struct {
	db *sql.DB
}

func NewFamilyMemberStore(db *sql.DB) *FamilyMemberStore {
	return &FamilyMemberStore{db: db}
}

func scanFamilyMember(scanner interface{ Scan(...any) error }) (*model.FamilyMember, error) {
	var m model.FamilyMember
	var platformUserID sql.NullInt64
	err := scanner.Scan(&m.ID, &m.UserID, &m.Name, &m.DateOfBirth, &platformUserID, &m.X, &m.Y, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if platformUserID.Valid {
		m.PlatformUserID = &platformUserID.Int64
	}
	return &m, nil
}

const familyMemberCols = `id, user_id, name, date_of_birth, platform_user_id, x, y, created_at`

func (s *FamilyMemberStore) ListByUser(userID int64) ([]model.FamilyMember, error) {
	rows, err := s.db.Query(
		`SELECT `+familyMemberCols+` FROM family_members WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	defer rows.Close()

	var out []model.FamilyMember
	for rows.Next() {
		m, err := scanFamilyMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *FamilyMemberStore) GetByID(id int64) (*model.FamilyMember, error) {
	row := s.db.QueryRow(`SELECT `+familyMemberCols+` FROM family_members WHERE id = ?`, id)
	m, err := scanFamilyMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family member: %w", err)
	}
	return m, nil
}

func (s *FamilyMemberStore) Create(userID int64, name, dateOfBirth string) (*model.FamilyMember, error) {
	// Position and platform link always start at their defaults; the insert
	// payload cannot set them.
	result, err := s.db.Exec(
		`INSERT INTO family_members (user_id, name, date_of_birth) VALUES (?, ?, ?)`,
		userID, name, dateOfBirth,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *FamilyMemberStore) UpdatePosition(id int64, x, y int) error {
	_, err := s.db.Exec(`UPDATE family_members SET x = ?, y = ? WHERE id = ?`, x, y, id)
	if err != nil {
		return fmt.Errorf("update family member position: %w", err)
	}
	return nil
}

func (s *FamilyMemberStore) LinkToUser(id, platformUserID int64) error {
	_, err := s.db.Exec(
		`UPDATE family_members SET platform_user_id = ? WHERE id = ?`,
		platformUserID, id,
	)
	if err != nil {
		return fmt.Errorf("link family member: %w", err)
	}
	return nil
}
