// Package database defines the record store contracts shared by the memory, SQL and Redis
// backends. Point lookups return (nil, nil) when the record does not exist.
package database

import (
	"context"
	"errors"
	"time"

	"community-bot/model"
)

var (
	// ErrConflict is returned by conditional updates when the stored record changed since it was read.
	ErrConflict = errors.New("record was modified concurrently")
	// ErrDuplicate is returned when a create collides with an existing unique key.
	ErrDuplicate = errors.New("record already exists")
)

// Backend names reported by Stores.Backend.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type TicketStore interface {
	// Create assigns ID, timestamps and version 1. A second ticket on the same channel is ErrDuplicate.
	Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error)
	Get(ctx context.Context, channelID string) (*model.Ticket, error)
	// List returns the guild's tickets oldest first, without their transcripts.
	List(ctx context.Context, guildID string) ([]*model.Ticket, error)
	// Update writes t only if the stored version still equals t.Version. Messages are not
	// written by Update; the stored transcript is kept as is.
	Update(ctx context.Context, t *model.Ticket) (*model.Ticket, error)
	// AppendMessage adds a transcript line to the open ticket on channelID without bumping its
	// version. It reports false when the channel has no open ticket.
	AppendMessage(ctx context.Context, channelID string, msg model.TicketMessage) (bool, error)
	Delete(ctx context.Context, channelID string) (bool, error)
}

type SettingsStore interface {
	Upsert(ctx context.Context, s *model.TicketSettings) (*model.TicketSettings, error)
	Get(ctx context.Context, guildID string) (*model.TicketSettings, error)
	Delete(ctx context.Context, guildID string) (bool, error)
}

type TicketLogStore interface {
	Append(ctx context.Context, e *model.TicketLogEntry) (*model.TicketLogEntry, error)
	// List returns the newest entries first. limit <= 0 returns everything.
	List(ctx context.Context, guildID string, limit int) ([]*model.TicketLogEntry, error)
}

type TemplateStore interface {
	Create(ctx context.Context, t *model.EmbedTemplate) (*model.EmbedTemplate, error)
	Get(ctx context.Context, guildID, name string) (*model.EmbedTemplate, error)
	List(ctx context.Context, guildID string) ([]*model.EmbedTemplate, error)
	Update(ctx context.Context, guildID, name string, data model.EmbedData) (*model.EmbedTemplate, error)
	Delete(ctx context.Context, guildID, name string) (bool, error)
}

type SentEmbedStore interface {
	Create(ctx context.Context, e *model.SentEmbed) (*model.SentEmbed, error)
	Get(ctx context.Context, messageID string) (*model.SentEmbed, error)
	Update(ctx context.Context, messageID string, data model.EmbedData, updatedBy string) (*model.SentEmbed, error)
	Delete(ctx context.Context, messageID string) (bool, error)
}

type WarningStore interface {
	Add(ctx context.Context, w *model.Warning) (*model.Warning, error)
	// List returns the user's warnings oldest first.
	List(ctx context.Context, guildID, userID string) ([]*model.Warning, error)
	Delete(ctx context.Context, guildID, userID string, id int64) (bool, error)
	Clear(ctx context.Context, guildID, userID string) (int, error)
}

type SessionStore interface {
	Put(ctx context.Context, s *model.EmbedSession, ttl time.Duration) error
	Get(ctx context.Context, userID string) (*model.EmbedSession, error)
	Delete(ctx context.Context, userID string) error
}

// Stores bundles every store served by one backend.
type Stores struct {
	Tickets    TicketStore
	Settings   SettingsStore
	TicketLogs TicketLogStore
	Templates  TemplateStore
	SentEmbeds SentEmbedStore
	Warnings   WarningStore
	Sessions   SessionStore

	// Degraded is set when the configured database could not be reached and memory took over.
	Degraded bool

	backend  string
	pingFn   func(ctx context.Context) error
	closeFns []func() error
}

// NewStores wraps the given stores. ping and closers may be nil.
func NewStores(backend string, ping func(ctx context.Context) error, closers ...func() error) *Stores {
	return &Stores{backend: backend, pingFn: ping, closeFns: closers}
}

// Backend reports which backend serves the record stores.
func (s *Stores) Backend() string {
	return s.backend
}

// Ping checks backend connectivity. The memory backend is always reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s.pingFn == nil {
		return nil
	}
	return s.pingFn(ctx)
}

// AddCloser registers an extra resource released by Close.
func (s *Stores) AddCloser(fn func() error) {
	s.closeFns = append(s.closeFns, fn)
}

// Close releases all backend resources and returns the first error.
func (s *Stores) Close() error {
	var first error
	for _, fn := range s.closeFns {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
