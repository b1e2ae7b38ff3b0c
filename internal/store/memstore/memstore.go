// Package memstore is the volatile entity store backend: plain maps behind a
// mutex, fresh per process. Data is lost on restart; everything else matches
// the sqlite backend's behavior. Meant for development and tests.
package memstore

import (
	"sync"
	"time"

	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
)

// Store owns the maps and id counters for every entity kind. Construct one
// per process (or per test) with New and pass it by reference; there is no
// package-level singleton.
type Store struct {
	mu sync.Mutex

	users         map[int64]*model.User
	memories      map[int64]*model.Memory
	familyMembers map[int64]*model.FamilyMember
	sessions      map[int64]*model.Session

	nextUserID         int64
	nextMemoryID       int64
	nextFamilyMemberID int64
	nextSessionID      int64

	sessionTTL time.Duration
}

// New creates an empty store. sessionTTL bounds how long login sessions stay
// valid.
func New(sessionTTL time.Duration) *Store {
	return &Store{
		users:              make(map[int64]*model.User),
		memories:           make(map[int64]*model.Memory),
		familyMembers:      make(map[int64]*model.FamilyMember),
		sessions:           make(map[int64]*model.Session),
		nextUserID:         1,
		nextMemoryID:       1,
		nextFamilyMemberID: 1,
		nextSessionID:      1,
		sessionTTL:         sessionTTL,
	}
}

// Stores returns the store.Store aggregate backed by this instance.
func (s *Store) Stores() *store.Store {
	return &store.Store{
		Users:         (*UserStore)(s),
		Memories:      (*MemoryStore)(s),
		FamilyMembers: (*FamilyMemberStore)(s),
		Sessions:      (*SessionStore)(s),
	}
}
