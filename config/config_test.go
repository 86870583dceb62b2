package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"community-bot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DISCORD_TOKEN", "BOT_TOKEN", "CLIENT_ID", "APP_ID", "GUILD_ID", "DATABASE_URL",
		"DB_FALLBACK_MEMORY", "REDIS_URL", "PORT", "LOG_LEVEL", "LOG_CHANNEL_ID",
		"SESSION_TTL", "CONFIRM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("CLIENT_ID", "app")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "app", cfg.AppID)
	assert.True(t, cfg.FallbackToMem)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.ConfirmTimeout)
	assert.Equal(t, model.Palette{Primary: "#5865F2", Success: "#57F287", Warning: "#FEE75C", Error: "#ED4245", Info: "#5865F2"}, cfg.Colors)
	assert.Equal(t, model.Cooldowns{Default: 3, Fun: 5, Moderation: 10}, cfg.Cooldowns)
	assert.Equal(t, "Tickets", cfg.Tickets.Category)
	assert.Equal(t, "ticket-logs", cfg.Tickets.LogsChannel)
	assert.Len(t, cfg.Tickets.Types, 3)
	assert.Contains(t, cfg.EmbedTemplates, "info")
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadRequired(t *testing.T) {
	clearEnv(t)
	_, err := load()
	assert.ErrorIs(t, err, ErrMissingToken)

	t.Setenv("DISCORD_TOKEN", "token")
	_, err = load()
	assert.ErrorIs(t, err, ErrMissingAppID)
}

func TestLoadAliasesAndOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "legacy-token")
	t.Setenv("APP_ID", "legacy-app")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_FALLBACK_MEMORY", "false")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("DATABASE_URL", "sqlite://data/bot.db")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", cfg.BotToken)
	assert.Equal(t, "legacy-app", cfg.AppID)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.FallbackToMem)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "sqlite://data/bot.db", cfg.DatabaseURL)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("CLIENT_ID", "app")

	dir := t.TempDir()
	yaml := `
colors:
  primary: "#112233"
tickets:
  welcome_message: "Welcome!"
  types:
    - label: Billing
      emoji: "💳"
cooldowns:
  fun: 8
embed_templates:
  rules:
    title: Rules
    description: Be nice
    color: "#FFFFFF"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
	assert.Equal(t, "#112233", cfg.Colors.Primary)
	assert.Equal(t, "#57F287", cfg.Colors.Success)
	assert.Equal(t, "Welcome!", cfg.Tickets.WelcomeMessage)
	assert.Equal(t, "Tickets", cfg.Tickets.Category)
	assert.Equal(t, []model.TicketType{{Label: "Billing", Emoji: "💳"}}, cfg.Tickets.Types)
	assert.Equal(t, 8, cfg.Cooldowns.Fun)
	assert.Equal(t, 3, cfg.Cooldowns.Default)
	require.Contains(t, cfg.EmbedTemplates, "rules")
	assert.Equal(t, "Be nice", cfg.EmbedTemplates["rules"].Description)
	assert.NotContains(t, cfg.EmbedTemplates, "info")
}

func TestLoadBrokenYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("CLIENT_ID", "app")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("colors: [\n"), 0o644))

	_, err := load(dir)
	assert.Error(t, err)
}
