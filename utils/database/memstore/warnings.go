package memstore

import (
	"context"
	"sync"

	"community-bot/model"
)

type warnKey struct {
	guildID string
	userID  string
}

type WarningStore struct {
	mu     sync.Mutex
	now    Clock
	nextID int64
	items  map[warnKey][]*model.Warning
}

func NewWarningStore(now Clock) *WarningStore {
	return &WarningStore{now: orNow(now), items: make(map[warnKey][]*model.Warning)}
}

func (s *WarningStore) Add(_ context.Context, w *model.Warning) (*model.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec := *w
	rec.ID = s.nextID
	rec.CreatedAt = s.now()
	key := warnKey{rec.GuildID, rec.UserID}
	s.items[key] = append(s.items[key], &rec)
	out := rec
	return &out, nil
}

func (s *WarningStore) List(_ context.Context, guildID, userID string) ([]*model.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[warnKey{guildID, userID}]
	out := make([]*model.Warning, 0, len(list))
	for _, w := range list {
		c := *w
		out = append(out, &c)
	}
	return out, nil
}

func (s *WarningStore) Delete(_ context.Context, guildID, userID string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := warnKey{guildID, userID}
	list := s.items[key]
	for i, w := range list {
		if w.ID == id {
			s.items[key] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *WarningStore) Clear(_ context.Context, guildID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := warnKey{guildID, userID}
	n := len(s.items[key])
	delete(s.items, key)
	return n, nil
}
