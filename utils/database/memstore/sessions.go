package memstore

import (
	"context"
	"sync"
	"time"

	"community-bot/model"
)

type sessionEntry struct {
	session   model.EmbedSession
	expiresAt time.Time
}

// SessionStore keeps embed-authoring sessions until their TTL passes.
// Expired entries are dropped lazily on access.
type SessionStore struct {
	mu    sync.Mutex
	now   Clock
	items map[string]sessionEntry
}

func NewSessionStore(now Clock) *SessionStore {
	return &SessionStore{now: orNow(now), items: make(map[string]sessionEntry)}
}

func (s *SessionStore) Put(_ context.Context, sess *model.EmbedSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := *sess
	c.Data = sess.Data.Clone()
	c.UpdatedAt = now
	entry := sessionEntry{session: c}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	s.items[sess.UserID] = entry
	return nil
}

func (s *SessionStore) Get(_ context.Context, userID string) (*model.EmbedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[userID]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.items, userID)
		return nil, nil
	}
	c := entry.session
	c.Data = entry.session.Data.Clone()
	return &c, nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
	return nil
}
