package memstore

import (
	"context"
	"sync"

	"community-bot/model"
)

type SettingsStore struct {
	mu      sync.Mutex
	now     Clock
	byGuild map[string]*model.TicketSettings
}

func NewSettingsStore(now Clock) *SettingsStore {
	return &SettingsStore{now: orNow(now), byGuild: make(map[string]*model.TicketSettings)}
}

func (s *SettingsStore) Upsert(_ context.Context, in *model.TicketSettings) (*model.TicketSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := in.Clone()
	now := s.now()
	if cur, ok := s.byGuild[in.GuildID]; ok {
		rec.CreatedAt = cur.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	s.byGuild[in.GuildID] = rec
	return rec.Clone(), nil
}

func (s *SettingsStore) Get(_ context.Context, guildID string) (*model.TicketSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byGuild[guildID].Clone(), nil
}

func (s *SettingsStore) Delete(_ context.Context, guildID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byGuild[guildID]; !ok {
		return false, nil
	}
	delete(s.byGuild, guildID)
	return true, nil
}
