package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"community-bot/model"
	"community-bot/utils/database"

	"github.com/google/uuid"
)

type templateKey struct {
	guildID string
	name    string
}

type TemplateStore struct {
	mu    sync.Mutex
	now   Clock
	items map[templateKey]*model.EmbedTemplate
}

func NewTemplateStore(now Clock) *TemplateStore {
	return &TemplateStore{now: orNow(now), items: make(map[templateKey]*model.EmbedTemplate)}
}

func copyTemplate(t *model.EmbedTemplate) *model.EmbedTemplate {
	if t == nil {
		return nil
	}
	c := *t
	c.Data = t.Data.Clone()
	return &c
}

func (s *TemplateStore) Create(_ context.Context, t *model.EmbedTemplate) (*model.EmbedTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := templateKey{t.GuildID, t.Name}
	if _, ok := s.items[key]; ok {
		return nil, fmt.Errorf("template %q: %w", t.Name, database.ErrDuplicate)
	}
	rec := copyTemplate(t)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := s.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.items[key] = rec
	return copyTemplate(rec), nil
}

func (s *TemplateStore) Get(_ context.Context, guildID, name string) (*model.EmbedTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTemplate(s.items[templateKey{guildID, name}]), nil
}

func (s *TemplateStore) List(_ context.Context, guildID string) ([]*model.EmbedTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.EmbedTemplate
	for k, t := range s.items {
		if k.guildID == guildID {
			out = append(out, copyTemplate(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *TemplateStore) Update(_ context.Context, guildID, name string, data model.EmbedData) (*model.EmbedTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[templateKey{guildID, name}]
	if !ok {
		return nil, nil
	}
	rec.Data = data.Clone()
	rec.UpdatedAt = s.now()
	return copyTemplate(rec), nil
}

func (s *TemplateStore) Delete(_ context.Context, guildID, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := templateKey{guildID, name}
	if _, ok := s.items[key]; !ok {
		return false, nil
	}
	delete(s.items, key)
	return true, nil
}

type SentEmbedStore struct {
	mu    sync.Mutex
	now   Clock
	items map[string]*model.SentEmbed
}

func NewSentEmbedStore(now Clock) *SentEmbedStore {
	return &SentEmbedStore{now: orNow(now), items: make(map[string]*model.SentEmbed)}
}

func copySent(e *model.SentEmbed) *model.SentEmbed {
	if e == nil {
		return nil
	}
	c := *e
	c.Data = e.Data.Clone()
	return &c
}

func (s *SentEmbedStore) Create(_ context.Context, e *model.SentEmbed) (*model.SentEmbed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[e.MessageID]; ok {
		return nil, fmt.Errorf("sent embed %s: %w", e.MessageID, database.ErrDuplicate)
	}
	rec := copySent(e)
	now := s.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.items[rec.MessageID] = rec
	return copySent(rec), nil
}

func (s *SentEmbedStore) Get(_ context.Context, messageID string) (*model.SentEmbed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySent(s.items[messageID]), nil
}

func (s *SentEmbedStore) Update(_ context.Context, messageID string, data model.EmbedData, updatedBy string) (*model.SentEmbed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[messageID]
	if !ok {
		return nil, nil
	}
	rec.Data = data.Clone()
	rec.UpdatedBy = updatedBy
	rec.UpdatedAt = s.now()
	return copySent(rec), nil
}

func (s *SentEmbedStore) Delete(_ context.Context, messageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[messageID]; !ok {
		return false, nil
	}
	delete(s.items, messageID)
	return true, nil
}
