package redisstore

import (
	"context"
	"testing"
	"time"

	"community-bot/model"
	"community-bot/utils/database/storetest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, nil), mr
}

func TestSessions(t *testing.T) {
	s, _ := newStore(t)
	storetest.RunSessions(t, s)
}

func TestSessionExpiry(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &model.EmbedSession{UserID: "u1", Data: model.EmbedData{Title: "x"}}, time.Minute))
	assert.True(t, mr.Exists(keyPrefix+"u1"))

	mr.FastForward(2 * time.Minute)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConnectUnreachable(t *testing.T) {
	_, err := Connect(context.Background(), "redis://127.0.0.1:1", zap.NewNop())
	require.Error(t, err)
}

func TestConnectBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url", zap.NewNop())
	require.Error(t, err)
}

func TestStoredAsJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewSessionStore(client, nil)

	require.NoError(t, s.Put(context.Background(), &model.EmbedSession{UserID: "u1", GuildID: "g1"}, 0))
	raw, err := mr.Get(keyPrefix + "u1")
	require.NoError(t, err)
	assert.Contains(t, raw, `"guild_id":"g1"`)
}
