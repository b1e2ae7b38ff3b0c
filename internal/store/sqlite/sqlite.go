// Package sqlite is the durable entity store backend over database/sql and
// the modernc SQLite driver. Schema lives in internal/database/migrations.
package sqlite

import (
	"database/sql"
	"time"

	"github.com/mwhitten/memento/internal/store"
)

// New wires every entity store over one database handle. sessionTTL bounds
// how long login sessions stay valid.
func New(db *sql.DB, sessionTTL time.Duration) *store.Store {
	return &store.Store{
		Users:         NewUserStore(db),
		Memories:      NewMemoryStore(db),
		FamilyMembers: NewFamilyMemberStore(db),
		Sessions:      NewSessionStore(db, sessionTTL),
	}
}
