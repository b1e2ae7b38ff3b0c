// Package store defines the persistence contract for Memento's entities.
// Two interchangeable backends implement it: memstore (volatile, in-process)
// and sqlite (durable). Handlers depend only on these interfaces; the
// backends must behave identically for every operation except persistence
// across restarts.
package store

import (
	"errors"

	"github.com/mwhitten/memento/internal/model"
)

// ErrUsernameTaken is returned by UserStore.Create when the username is
// already registered. Enforced atomically by both backends.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore persists registered accounts. Lookups return (nil, nil) when the
// user does not exist.
type UserStore interface {
	GetByID(id int64) (*model.User, error)
	// GetByUsername is an exact, case-sensitive match. Used by login and by
	// session rehydration.
	GetByUsername(username string) (*model.User, error)
	// Create assigns a fresh id. passwordHash is the caller's bcrypt digest;
	// the store treats it as opaque.
	Create(username, passwordHash, fullName, dateOfBirth string) (*model.User, error)
	// Search matches username or full name case-insensitively, returning at
	// most limit summaries. A non-positive limit means no limit.
	Search(query string, limit int) ([]model.UserSummary, error)
}

// MemoryStore persists journal entries.
type MemoryStore interface {
	ListByUser(userID int64) ([]model.Memory, error)
	// ListByUserAndCategory applies both filters (logical AND).
	ListByUserAndCategory(userID, categoryID int64) ([]model.Memory, error)
	// ListShared is the unscoped feed of everyone's memories, newest first.
	// A non-positive limit means no limit.
	ListShared(limit int) ([]model.Memory, error)
	Create(userID, categoryID int64, title, content string, imageURL *string) (*model.Memory, error)
	// Delete is idempotent: deleting an absent id is not an error.
	Delete(id int64) error
}

// FamilyMemberStore persists family tree nodes.
type FamilyMemberStore interface {
	ListByUser(userID int64) ([]model.FamilyMember, error)
	GetByID(id int64) (*model.FamilyMember, error)
	// Create assigns a fresh id, the default canvas position (100, 100), and
	// a nil platform link regardless of caller input.
	Create(userID int64, name, dateOfBirth string) (*model.FamilyMember, error)
	// UpdatePosition silently no-ops when the id is absent.
	UpdatePosition(id int64, x, y int) error
	// LinkToUser silently no-ops when the member id is absent. It does not
	// verify that platformUserID exists; the weak reference is a plain value.
	LinkToUser(id, platformUserID int64) error
}

// SessionStore persists login sessions keyed by an opaque token.
type SessionStore interface {
	// Create generates a crypto-random token; the lifetime comes from the
	// backend's configured TTL.
	Create(userID int64) (*model.Session, error)
	// GetByToken returns (nil, nil) for unknown or expired tokens.
	GetByToken(token string) (*model.Session, error)
	Delete(id int64) error
	DeleteExpired() (int64, error)
}

// Store aggregates one backend's entity stores for injection into handlers.
type Store struct {
	Users         UserStore
	Memories      MemoryStore
	FamilyMembers FamilyMemberStore
	Sessions      SessionStore
}
