package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"community-bot/model"
	"community-bot/utils/database"
	"community-bot/utils/database/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) *database.Stores {
		return New(storetest.NewStepClock().Now)
	})
}

func TestSessions(t *testing.T) {
	storetest.RunSessions(t, NewSessionStore(time.Now))
}

func TestNilClockDefaultsToNow(t *testing.T) {
	ctx := context.Background()

	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Put(ctx, &model.EmbedSession{UserID: "u1"}, time.Minute))
	got, err := sessions.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)

	w, err := NewWarningStore(nil).Add(ctx, &model.Warning{GuildID: "g1", UserID: "u1", IssuedBy: "m1", Reason: "spam"})
	require.NoError(t, err)
	assert.False(t, w.CreatedAt.IsZero())
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewSessionStore(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &model.EmbedSession{UserID: "u1"}, time.Minute))
	require.NoError(t, store.Put(ctx, &model.EmbedSession{UserID: "u2"}, 0))

	now = now.Add(2 * time.Minute)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, got, "a zero ttl never expires")
}

func TestTicketCopiesAreIsolated(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	in := &model.Ticket{ChannelID: "c1", GuildID: "g1", UserID: "u1", Participants: []string{"u1"}}
	created, err := s.Tickets.Create(ctx, in)
	require.NoError(t, err)

	created.Participants[0] = "mutated"
	in.Participants[0] = "mutated"

	got, err := s.Tickets.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Participants)
}

func TestConcurrentWarnings(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Warnings.Add(ctx, &model.Warning{GuildID: "g1", UserID: "u1", Reason: "r"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := s.Warnings.List(ctx, "g1", "u1")
	require.NoError(t, err)
	require.Len(t, list, 50)
	seen := make(map[int64]bool)
	for _, w := range list {
		assert.False(t, seen[w.ID])
		seen[w.ID] = true
	}
}
