package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"community-bot/model"
	"community-bot/utils/database"
)

type TicketStore struct {
	mu      sync.Mutex
	now     Clock
	byChan  map[string]*model.Ticket
	byGuild map[string][]string
	seq     map[string]int
}

func NewTicketStore(now Clock) *TicketStore {
	return &TicketStore{
		now:     orNow(now),
		byChan:  make(map[string]*model.Ticket),
		byGuild: make(map[string][]string),
		seq:     make(map[string]int),
	}
}

func (s *TicketStore) Create(_ context.Context, t *model.Ticket) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byChan[t.ChannelID]; ok {
		return nil, fmt.Errorf("ticket for channel %s: %w", t.ChannelID, database.ErrDuplicate)
	}

	rec := t.Clone()
	s.seq[rec.GuildID]++
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("ticket-%d", s.seq[rec.GuildID])
	}
	if rec.Status == "" {
		rec.Status = model.TicketOpen
	}
	now := s.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.Version = 1

	s.byChan[rec.ChannelID] = rec
	s.byGuild[rec.GuildID] = append(s.byGuild[rec.GuildID], rec.ChannelID)
	return rec.Clone(), nil
}

func (s *TicketStore) Get(_ context.Context, channelID string) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byChan[channelID].Clone(), nil
}

func (s *TicketStore) List(_ context.Context, guildID string) ([]*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Ticket, 0, len(s.byGuild[guildID]))
	for _, ch := range s.byGuild[guildID] {
		if t, ok := s.byChan[ch]; ok {
			c := t.Clone()
			c.Messages = nil
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *TicketStore) Update(_ context.Context, t *model.Ticket) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byChan[t.ChannelID]
	if !ok {
		return nil, nil
	}
	if cur.Version != t.Version {
		return nil, fmt.Errorf("ticket %s at version %d: %w", t.ChannelID, t.Version, database.ErrConflict)
	}

	rec := t.Clone()
	rec.ID = cur.ID
	rec.GuildID = cur.GuildID
	rec.UserID = cur.UserID
	rec.Messages = cur.Messages
	rec.CreatedAt = cur.CreatedAt
	rec.UpdatedAt = s.now()
	rec.Version = cur.Version + 1
	s.byChan[rec.ChannelID] = rec
	return rec.Clone(), nil
}

func (s *TicketStore) AppendMessage(_ context.Context, channelID string, msg model.TicketMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byChan[channelID]
	if !ok || !cur.IsOpen() {
		return false, nil
	}
	msg.Attachments = append([]string(nil), msg.Attachments...)
	cur.Messages = append(cur.Messages, msg)
	return true, nil
}

func (s *TicketStore) Delete(_ context.Context, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byChan[channelID]
	if !ok {
		return false, nil
	}
	delete(s.byChan, channelID)
	chans := s.byGuild[t.GuildID]
	for i, ch := range chans {
		if ch == channelID {
			s.byGuild[t.GuildID] = append(chans[:i], chans[i+1:]...)
			break
		}
	}
	return true, nil
}
