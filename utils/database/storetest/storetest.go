// Package storetest holds the record store contract tests. Every backend runs the same suite
// from its own package tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"community-bot/model"
	"community-bot/utils/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StepClock is a deterministic clock that moves forward one second per reading.
type StepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func NewStepClock() *StepClock {
	return &StepClock{cur: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

// Factory returns a fresh, empty set of stores for one sub-test.
type Factory func(t *testing.T) *database.Stores

// Run executes the whole contract against the stores returned by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("Tickets", func(t *testing.T) { testTickets(t, newStores(t)) })
	t.Run("TicketConflict", func(t *testing.T) { testTicketConflict(t, newStores(t)) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, newStores(t)) })
	t.Run("TicketLogs", func(t *testing.T) { testTicketLogs(t, newStores(t)) })
	t.Run("Templates", func(t *testing.T) { testTemplates(t, newStores(t)) })
	t.Run("SentEmbeds", func(t *testing.T) { testSentEmbeds(t, newStores(t)) })
	t.Run("Warnings", func(t *testing.T) { testWarnings(t, newStores(t)) })
}

// RunSessions executes the session contract. Expiry is backend specific and tested there.
func RunSessions(t *testing.T, sessions database.SessionStore) {
	ctx := context.Background()

	got, err := sessions.Get(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, got)

	in := &model.EmbedSession{
		UserID:  "u1",
		GuildID: "g1",
		Data: model.EmbedData{
			Title:  "Hello",
			Color:  "#FF0000",
			Footer: &model.EmbedFooter{Text: "foot"},
		},
	}
	require.NoError(t, sessions.Put(ctx, in, time.Hour))

	got, err = sessions.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g1", got.GuildID)
	assert.Equal(t, "Hello", got.Data.Title)
	require.NotNil(t, got.Data.Footer)
	assert.Equal(t, "foot", got.Data.Footer.Text)

	in.Data.Title = "Changed"
	require.NoError(t, sessions.Put(ctx, in, time.Hour))
	got, err = sessions.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Data.Title)

	require.NoError(t, sessions.Delete(ctx, "u1"))
	got, err = sessions.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, sessions.Delete(ctx, "missing"))
}

func newTicket(guild, channel, user string) *model.Ticket {
	return &model.Ticket{
		ChannelID:    channel,
		GuildID:      guild,
		UserID:       user,
		Type:         "General Support",
		Status:       model.TicketOpen,
		Name:         "ticket-" + user,
		Participants: []string{user},
	}
}

func testTickets(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	missing, err := s.Tickets.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	first, err := s.Tickets.Create(ctx, newTicket("g1", "c1", "u1"))
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", first.ID)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, model.TicketOpen, first.Status)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := s.Tickets.Create(ctx, newTicket("g1", "c2", "u2"))
	require.NoError(t, err)
	assert.Equal(t, "ticket-2", second.ID)

	other, err := s.Tickets.Create(ctx, newTicket("g2", "c3", "u3"))
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", other.ID, "ids are sequenced per guild")

	_, err = s.Tickets.Create(ctx, newTicket("g1", "c1", "u9"))
	require.ErrorIs(t, err, database.ErrDuplicate)

	got, err := s.Tickets.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"u1"}, got.Participants)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.CreatedAt.Equal(first.CreatedAt))

	list, err := s.Tickets.List(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ChannelID)
	assert.Equal(t, "c2", list[1].ChannelID)

	closedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	got.Status = model.TicketClosed
	got.ClosedBy = "staff"
	got.ClosedAt = &closedAt
	got.CloseReason = "done"
	got.ClaimedBy = "staff"
	got.Participants = append(got.Participants, "u5")

	stored, err := s.Tickets.AppendMessage(ctx, "c1", model.TicketMessage{
		ID:          "m1",
		AuthorID:    "u1",
		Author:      "user one",
		Content:     "help",
		Timestamp:   closedAt,
		Attachments: []string{"https://cdn.example/a.png"},
	})
	require.NoError(t, err)
	assert.True(t, stored)
	stored, err = s.Tickets.AppendMessage(ctx, "nowhere", model.TicketMessage{ID: "m0"})
	require.NoError(t, err)
	assert.False(t, stored)

	// got was read before the append; the update must neither conflict nor drop the line.
	updated, err := s.Tickets.Update(ctx, got)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, model.TicketClosed, updated.Status)
	assert.Equal(t, "done", updated.CloseReason)
	require.NotNil(t, updated.ClosedAt)
	assert.True(t, updated.ClosedAt.Equal(closedAt))
	assert.Equal(t, []string{"u1", "u5"}, updated.Participants)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, "help", updated.Messages[0].Content)
	assert.Equal(t, []string{"https://cdn.example/a.png"}, updated.Messages[0].Attachments)
	assert.True(t, updated.Messages[0].Timestamp.Equal(closedAt))
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))

	stored, err = s.Tickets.AppendMessage(ctx, "c1", model.TicketMessage{ID: "m2", Content: "after close"})
	require.NoError(t, err)
	assert.False(t, stored, "closed tickets take no more lines")

	ghost := newTicket("g1", "ghost", "u1")
	ghost.Version = 1
	res, err := s.Tickets.Update(ctx, ghost)
	require.NoError(t, err)
	assert.Nil(t, res)

	stored, err = s.Tickets.AppendMessage(ctx, "c2", model.TicketMessage{ID: "m3", Content: "bye"})
	require.NoError(t, err)
	assert.True(t, stored)

	list, err = s.Tickets.List(ctx, "g1")
	require.NoError(t, err)
	for _, tk := range list {
		assert.Empty(t, tk.Messages, "list omits transcripts")
	}

	ok, err := s.Tickets.Delete(ctx, "c2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Tickets.Delete(ctx, "c2")
	require.NoError(t, err)
	assert.False(t, ok)

	reopened, err := s.Tickets.Create(ctx, newTicket("g1", "c2", "u2"))
	require.NoError(t, err)
	got, err = s.Tickets.Get(ctx, reopened.ChannelID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages, "delete drops the transcript")

	list, err = s.Tickets.List(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func testTicketConflict(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	created, err := s.Tickets.Create(ctx, newTicket("g1", "c1", "u1"))
	require.NoError(t, err)

	a := created.Clone()
	b := created.Clone()
	a.ClaimedBy = "staff-a"
	b.ClaimedBy = "staff-b"

	_, err = s.Tickets.Update(ctx, a)
	require.NoError(t, err)
	_, err = s.Tickets.Update(ctx, b)
	require.ErrorIs(t, err, database.ErrConflict)

	cur, err := s.Tickets.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "staff-a", cur.ClaimedBy)
	assert.Equal(t, 2, cur.Version)
}

func testSettings(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	got, err := s.Settings.Get(ctx, "g1")
	require.NoError(t, err)
	require.Nil(t, got)

	in := &model.TicketSettings{
		GuildID:      "g1",
		CategoryID:   "cat",
		StaffRoleIDs: []string{"r1"},
		LogsChannel:  "ticket-logs",
		TicketTypes:  []model.TicketType{{Label: "General Support", Emoji: "🔧"}},
	}
	first, err := s.Settings.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "cat", first.CategoryID)

	in.CategoryID = "cat2"
	in.PanelChannelID = "panel"
	in.PanelMessageID = "msg"
	second, err := s.Settings.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "cat2", second.CategoryID)
	assert.Equal(t, "msg", second.PanelMessageID)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "upsert keeps the creation time")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err = s.Settings.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, got.StaffRoleIDs)
	assert.Equal(t, []model.TicketType{{Label: "General Support", Emoji: "🔧"}}, got.TicketTypes)

	ok, err := s.Settings.Delete(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Settings.Delete(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func testTicketLogs(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		e, err := s.TicketLogs.Append(ctx, &model.TicketLogEntry{
			GuildID: "g1",
			Action:  model.ActionClaim,
			ActorID: fmt.Sprintf("u%d", i),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
	}
	_, err := s.TicketLogs.Append(ctx, &model.TicketLogEntry{GuildID: "g2", Action: model.ActionCreate})
	require.NoError(t, err)

	all, err := s.TicketLogs.List(ctx, "g1", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "u4", all[0].ActorID, "newest first")
	assert.Equal(t, "u1", all[3].ActorID)

	limited, err := s.TicketLogs.List(ctx, "g1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "u4", limited[0].ActorID)
	assert.Equal(t, "u3", limited[1].ActorID)

	none, err := s.TicketLogs.List(ctx, "g3", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testTemplates(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	created, err := s.Templates.Create(ctx, &model.EmbedTemplate{
		GuildID:   "g1",
		Name:      "welcome",
		Data:      model.EmbedData{Title: "Welcome", Color: "#57F287"},
		CreatedBy: "u1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = s.Templates.Create(ctx, &model.EmbedTemplate{GuildID: "g1", Name: "welcome"})
	require.ErrorIs(t, err, database.ErrDuplicate)

	_, err = s.Templates.Create(ctx, &model.EmbedTemplate{GuildID: "g2", Name: "welcome"})
	require.NoError(t, err, "names are unique per guild only")

	_, err = s.Templates.Create(ctx, &model.EmbedTemplate{GuildID: "g1", Name: "announce", Data: model.EmbedData{Description: "news"}})
	require.NoError(t, err)

	list, err := s.Templates.List(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "announce", list[0].Name)
	assert.Equal(t, "welcome", list[1].Name)

	updated, err := s.Templates.Update(ctx, "g1", "welcome", model.EmbedData{
		Title: "Hi",
		Image: &model.EmbedImage{URL: "https://example.com/x.png"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Hi", updated.Data.Title)
	require.NotNil(t, updated.Data.Image)
	assert.Equal(t, created.ID, updated.ID)

	missing, err := s.Templates.Update(ctx, "g1", "nope", model.EmbedData{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	got, err := s.Templates.Get(ctx, "g1", "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := s.Templates.Delete(ctx, "g1", "welcome")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Templates.Delete(ctx, "g1", "welcome")
	require.NoError(t, err)
	assert.False(t, ok)
}

func testSentEmbeds(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	_, err := s.SentEmbeds.Create(ctx, &model.SentEmbed{
		MessageID: "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Data:      model.EmbedData{Title: "Rules"},
		CreatedBy: "u1",
	})
	require.NoError(t, err)

	_, err = s.SentEmbeds.Create(ctx, &model.SentEmbed{MessageID: "m1", ChannelID: "c1", GuildID: "g1"})
	require.ErrorIs(t, err, database.ErrDuplicate)

	updated, err := s.SentEmbeds.Update(ctx, "m1", model.EmbedData{Title: "New rules"}, "u2")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New rules", updated.Data.Title)
	assert.Equal(t, "u1", updated.CreatedBy)
	assert.Equal(t, "u2", updated.UpdatedBy)

	missing, err := s.SentEmbeds.Update(ctx, "m2", model.EmbedData{}, "u2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := s.SentEmbeds.Delete(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.SentEmbeds.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testWarnings(t *testing.T, s *database.Stores) {
	ctx := context.Background()

	var ids []int64
	for _, reason := range []string{"spam", "caps", "links"} {
		w, err := s.Warnings.Add(ctx, &model.Warning{GuildID: "g1", UserID: "u1", IssuedBy: "mod", Reason: reason})
		require.NoError(t, err)
		ids = append(ids, w.ID)
	}
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	ok, err := s.Warnings.Delete(ctx, "g1", "u1", ids[1])
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := s.Warnings.List(ctx, "g1", "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "spam", list[0].Reason)
	assert.Equal(t, "links", list[1].Reason)
	assert.Equal(t, ids[2], list[1].ID, "ids are stable after a removal")

	next, err := s.Warnings.Add(ctx, &model.Warning{GuildID: "g1", UserID: "u1", IssuedBy: "mod", Reason: "again"})
	require.NoError(t, err)
	assert.Greater(t, next.ID, ids[2], "ids are never reused")

	ok, err = s.Warnings.Delete(ctx, "g1", "u2", ids[0])
	require.NoError(t, err)
	assert.False(t, ok, "a warning is scoped to its member")

	n, err := s.Warnings.Clear(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	list, err = s.Warnings.List(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
