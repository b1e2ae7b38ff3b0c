package memstore

import (
	"sort"
	"strings"

	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
)

// UserStore implements store.UserStore over the shared maps.
type UserStore Store

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Create(username, passwordHash, fullName, dateOfBirth string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Uniqueness check and insert happen under the same lock, so two
	// concurrent registrations cannot both win.
	for _, u := range s.users {
		if u.Username == username {
			return nil, store.ErrUsernameTaken
		}
	}

	u := &model.User{
		ID:          s.nextUserID,
		Username:    username,
		Password:    passwordHash,
		FullName:    fullName,
		DateOfBirth: dateOfBirth,
	}
	s.nextUserID++
	s.users[u.ID] = u

	cp := *u
	return &cp, nil
}

func (s *UserStore) Search(query string, limit int) ([]model.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var out []model.UserSummary
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.FullName), q) {
			out = append(out, model.UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
