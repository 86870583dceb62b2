package sqlstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"community-bot/model"
	"community-bot/utils/database"
	"community-bot/utils/database/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *database.Stores {
	t.Helper()
	url := "sqlite://" + filepath.Join(t.TempDir(), "bot.db")
	db, backend, err := Connect(context.Background(), url)
	require.NoError(t, err)
	require.Equal(t, database.BackendSQLite, backend)

	s := New(db, backend, storetest.NewStepClock().Now)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestContractSQLite(t *testing.T) {
	storetest.Run(t, openSQLite)
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		driver  string
		dsn     string
		backend string
		wantErr bool
	}{
		{name: "postgres", url: "postgres://u:p@localhost/bot", driver: "pgx", dsn: "postgres://u:p@localhost/bot", backend: database.BackendPostgres},
		{name: "postgresql", url: "postgresql://localhost/bot", driver: "pgx", dsn: "postgresql://localhost/bot", backend: database.BackendPostgres},
		{name: "sqlite scheme", url: "sqlite://data/bot.db", driver: "sqlite3", dsn: "data/bot.db", backend: database.BackendSQLite},
		{name: "plain file", url: "./bot.sqlite", driver: "sqlite3", dsn: "./bot.sqlite", backend: database.BackendSQLite},
		{name: "file uri", url: "file:bot?mode=memory", driver: "sqlite3", dsn: "file:bot?mode=memory", backend: database.BackendSQLite},
		{name: "mysql", url: "mysql://localhost/bot", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn, backend, err := ParseURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.driver, driver)
			require.Equal(t, tt.dsn, dsn)
			require.Equal(t, tt.backend, backend)
		})
	}
}

func TestInitIsIdempotent(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "bot.db")
	db, backend, err := Connect(context.Background(), url)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Init(context.Background(), db, backend))
}

func TestDataSurvivesReopen(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "bot.db")
	ctx := context.Background()

	db, backend, err := Connect(ctx, url)
	require.NoError(t, err)
	s := New(db, backend, nil)
	_, err = s.Warnings.Add(ctx, &model.Warning{GuildID: "g1", UserID: "u1", IssuedBy: "m", Reason: "spam"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	db, backend, err = Connect(ctx, url)
	require.NoError(t, err)
	s = New(db, backend, nil)
	defer s.Close()

	list, err := s.Warnings.List(ctx, "g1", "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "spam", list[0].Reason)
}

func TestConcurrentTicketCreate(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tk, err := s.Tickets.Create(ctx, &model.Ticket{
				ChannelID: fmt.Sprintf("c%d", i),
				GuildID:   "g1",
				UserID:    "u1",
			})
			if assert.NoError(t, err) {
				ids <- tk.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 20)
}
