package memstore

import (
	"sort"
	"time"

	"github.com/mwhitten/memento/internal/model"
)

// MemoryStore implements store.MemoryStore over the shared maps.
type MemoryStore Store

func (s *MemoryStore) ListByUser(userID int64) ([]model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Memory
	for _, m := range s.memories {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	sortByIDAsc(out)
	return out, nil
}

func (s *MemoryStore) ListByUserAndCategory(userID, categoryID int64) ([]model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Memory
	for _, m := range s.memories {
		if m.UserID == userID && m.CategoryID == categoryID {
			out = append(out, *m)
		}
	}
	sortByIDAsc(out)
	return out, nil
}

func (s *MemoryStore) ListShared(limit int) ([]model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Memory, 0, len(s.memories))
	for _, m := range s.memories {
		out = append(out, *m)
	}
	// Newest first; ids break ties since createdAt has second precision on
	// the sqlite side.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Create(userID, categoryID int64, title, content string, imageURL *string) (*model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &model.Memory{
		ID:         s.nextMemoryID,
		UserID:     userID,
		CategoryID: categoryID,
		Title:      title,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if imageURL != nil {
		v := *imageURL
		m.ImageURL = &v
	}
	s.nextMemoryID++
	s.memories[m.ID] = m

	cp := *m
	return &cp, nil
}

func (s *MemoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.memories, id)
	return nil
}

func sortByIDAsc(ms []model.Memory) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].ID < ms[j].ID })
}
