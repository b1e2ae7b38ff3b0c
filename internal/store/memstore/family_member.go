package memstore

import (
	"sort"
	"time"

	"github.com/mwhitten/memento/internal/model"
)

// FamilyMemberStore implements store.FamilyMemberStore over the shared maps.
type FamilyMemberStore Store

const defaultX, defaultY = 100, 100

func (s *FamilyMemberStore) ListByUser(userID int64) ([]model.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.FamilyMember
	for _, m := range s.familyMembers {
		if m.UserID == userID {
			out = append(out, cloneMember(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FamilyMemberStore) GetByID(id int64) (*model.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.familyMembers[id]
	if !ok {
		return nil, nil
	}
	cp := cloneMember(m)
	return &cp, nil
}

func (s *FamilyMemberStore) Create(userID int64, name, dateOfBirth string) (*model.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &model.FamilyMember{
		ID:          s.nextFamilyMemberID,
		UserID:      userID,
		Name:        name,
		DateOfBirth: dateOfBirth,
		X:           defaultX,
		Y:           defaultY,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextFamilyMemberID++
	s.familyMembers[m.ID] = m

	cp := cloneMember(m)
	return &cp, nil
}

func (s *FamilyMemberStore) UpdatePosition(id int64, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.familyMembers[id]; ok {
		m.X, m.Y = x, y
	}
	return nil
}

func (s *FamilyMemberStore) LinkToUser(id, platformUserID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.familyMembers[id]; ok {
		v := platformUserID
		m.PlatformUserID = &v
	}
	return nil
}

func cloneMember(m *model.FamilyMember) model.FamilyMember {
	cp := *m
	if m.PlatformUserID != nil {
		v := *m.PlatformUserID
		cp.PlatformUserID = &v
	}
	return cp
}
