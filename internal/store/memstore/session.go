package memstore

import (
	"time"

	"github.com/mwhitten/memento/internal/model"
	"github.com/mwhitten/memento/internal/store"
)

// SessionStore implements store.SessionStore over the shared maps.
type SessionStore Store

func (s *SessionStore) Create(userID int64) (*model.Session, error) {
	token, err := store.NewSessionToken()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sess := &model.Session{
		ID:        s.nextSessionID,
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	s.nextSessionID++
	s.sessions[sess.ID] = sess

	cp := *sess
	return &cp, nil
}

func (s *SessionStore) GetByToken(token string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.Token == token {
			if time.Now().UTC().After(sess.ExpiresAt) {
				return nil, nil
			}
			cp := *sess
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *SessionStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) DeleteExpired() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var n int64
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
