package memstore

import (
	"context"
	"sync"

	"community-bot/model"

	"github.com/google/uuid"
)

type TicketLogStore struct {
	mu      sync.Mutex
	now     Clock
	byGuild map[string][]*model.TicketLogEntry
}

func NewTicketLogStore(now Clock) *TicketLogStore {
	return &TicketLogStore{now: orNow(now), byGuild: make(map[string][]*model.TicketLogEntry)}
}

func (s *TicketLogStore) Append(_ context.Context, e *model.TicketLogEntry) (*model.TicketLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *e
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = s.now()
	s.byGuild[rec.GuildID] = append(s.byGuild[rec.GuildID], &rec)
	out := rec
	return &out, nil
}

// List walks the append order backwards, which is newest first even when timestamps tie.
func (s *TicketLogStore) List(_ context.Context, guildID string, limit int) ([]*model.TicketLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byGuild[guildID]
	out := make([]*model.TicketLogEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		e := *entries[i]
		out = append(out, &e)
	}
	return out, nil
}
