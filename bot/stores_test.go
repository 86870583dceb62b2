package bot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"community-bot/model"
	"community-bot/utils/database"
	"community-bot/utils/database/redisstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenStoresMemory(t *testing.T) {
	stores, err := OpenStores(context.Background(), &model.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer stores.Close()

	assert.Equal(t, database.BackendMemory, stores.Backend())
	assert.False(t, stores.Degraded)
	assert.NoError(t, stores.Ping(context.Background()))
}

func TestOpenStoresSQLite(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "bot.db")
	stores, err := OpenStores(context.Background(), &model.Config{DatabaseURL: url}, zap.NewNop())
	require.NoError(t, err)
	defer stores.Close()

	assert.Equal(t, database.BackendSQLite, stores.Backend())
	assert.NoError(t, stores.Ping(context.Background()))

	ctx := context.Background()
	require.NotPanics(t, func() {
		require.NoError(t, stores.Sessions.Put(ctx, &model.EmbedSession{UserID: "u1", GuildID: "g1"}, time.Minute))
	})
	got, err := stores.Sessions.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g1", got.GuildID)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestOpenStoresFallback(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "missing", "dir", "bot.db")

	stores, err := OpenStores(context.Background(), &model.Config{DatabaseURL: url, FallbackToMem: true}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, database.BackendMemory, stores.Backend())
	assert.True(t, stores.Degraded)

	_, err = OpenStores(context.Background(), &model.Config{DatabaseURL: url}, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenStoresRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)

	stores, err := OpenStores(context.Background(), &model.Config{RedisURL: "redis://" + mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	defer stores.Close()

	assert.IsType(t, &redisstore.SessionStore{}, stores.Sessions)
	assert.False(t, stores.Degraded)
}

func TestOpenStoresRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	stores, err := OpenStores(context.Background(), &model.Config{RedisURL: "redis://" + addr, FallbackToMem: true}, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, stores.Degraded)
	assert.Equal(t, database.BackendMemory, stores.Backend())

	_, err = OpenStores(context.Background(), &model.Config{RedisURL: "redis://" + addr}, zap.NewNop())
	assert.Error(t, err)
}
