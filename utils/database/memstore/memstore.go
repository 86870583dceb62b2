// Package memstore is the in-process backend. It keeps every record in maps guarded by a
// mutex and hands out copies, so callers can never mutate stored state directly.
package memstore

import (
	"time"

	"community-bot/utils/database"
)

// Clock returns the current time. Tests replace it to get deterministic timestamps.
type Clock func() time.Time

func orNow(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

// New returns a full set of memory-backed stores. A nil clock means time.Now.
func New(now Clock) *database.Stores {
	now = orNow(now)
	s := database.NewStores(database.BackendMemory, nil)
	s.Tickets = NewTicketStore(now)
	s.Settings = NewSettingsStore(now)
	s.TicketLogs = NewTicketLogStore(now)
	s.Templates = NewTemplateStore(now)
	s.SentEmbeds = NewSentEmbedStore(now)
	s.Warnings = NewWarningStore(now)
	s.Sessions = NewSessionStore(now)
	return s
}
