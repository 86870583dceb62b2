package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"community-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingToken = errors.New("DISCORD_TOKEN environment variable not set")
	ErrMissingAppID = errors.New("CLIENT_ID environment variable not set")
)

// DefaultEmbedTemplates are the presets offered by embed-create.
var DefaultEmbedTemplates = map[string]model.EmbedData{
	"info": {
		Title:  "Information",
		Color:  "#5865F2",
		Footer: &model.EmbedFooter{Text: "Bot Information"},
	},
	"success": {
		Title:  "Success",
		Color:  "#57F287",
		Footer: &model.EmbedFooter{Text: "Operation Successful"},
	},
	"error": {
		Title:  "Error",
		Color:  "#ED4245",
		Footer: &model.EmbedFooter{Text: "An error occurred"},
	},
	"warning": {
		Title:  "Warning",
		Color:  "#FEE75C",
		Footer: &model.EmbedFooter{Text: "Please take note"},
	},
}

var searchPaths = []string{".", "./data"}

// Load loads the configuration from .env, the environment and an optional config.yaml.
func Load() (*model.Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()
	return load(searchPaths...)
}

func load(paths ...string) (*model.Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &model.Config{
		BotToken:       strings.TrimSpace(v.GetString("bot_token")),
		AppID:          strings.TrimSpace(v.GetString("app_id")),
		GuildID:        v.GetString("guild_id"),
		DatabaseURL:    v.GetString("database_url"),
		FallbackToMem:  v.GetBool("db_fallback_memory"),
		RedisURL:       v.GetString("redis_url"),
		Port:           v.GetInt("port"),
		LogLevel:       v.GetString("log_level"),
		LogChannelID:   v.GetString("log_channel_id"),
		SessionTTL:     v.GetDuration("session_ttl"),
		ConfirmTimeout: v.GetDuration("confirm_timeout"),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if cfg.BotToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.AppID == "" {
		return nil, ErrMissingAppID
	}

	if err := v.UnmarshalKey("colors", &cfg.Colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}
	if err := v.UnmarshalKey("tickets", &cfg.Tickets); err != nil {
		return nil, fmt.Errorf("failed to decode ticket defaults: %w", err)
	}
	if err := v.UnmarshalKey("cooldowns", &cfg.Cooldowns); err != nil {
		return nil, fmt.Errorf("failed to decode cooldowns: %w", err)
	}
	if err := v.UnmarshalKey("embed_templates", &cfg.EmbedTemplates); err != nil {
		return nil, fmt.Errorf("failed to decode embed templates: %w", err)
	}
	normalize(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_fallback_memory", true)
	v.SetDefault("port", 3000)
	v.SetDefault("log_level", "info")
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("confirm_timeout", 30*time.Second)

	v.SetDefault("colors.primary", "#5865F2")
	v.SetDefault("colors.success", "#57F287")
	v.SetDefault("colors.warning", "#FEE75C")
	v.SetDefault("colors.error", "#ED4245")
	v.SetDefault("colors.info", "#5865F2")

	v.SetDefault("tickets.category", "Tickets")
	v.SetDefault("tickets.logs_channel", "ticket-logs")

	v.SetDefault("cooldowns.default", 3)
	v.SetDefault("cooldowns.fun", 5)
	v.SetDefault("cooldowns.moderation", 10)
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	// BindEnv only fails without a key
	_ = v.BindEnv("bot_token", "DISCORD_TOKEN", "BOT_TOKEN")
	_ = v.BindEnv("app_id", "CLIENT_ID", "APP_ID")
	for _, key := range []string{
		"guild_id", "database_url", "db_fallback_memory", "redis_url", "port",
		"log_level", "log_channel_id", "session_ttl", "confirm_timeout",
	} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
}

// normalize fills in what the config file may have left empty or invalid.
func normalize(cfg *model.Config) {
	if cfg.Port <= 0 {
		cfg.Port = 3000
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 30 * time.Second
	}
	// a partial section in config.yaml hides the nested defaults
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&cfg.Colors.Primary, "#5865F2")
	fill(&cfg.Colors.Success, "#57F287")
	fill(&cfg.Colors.Warning, "#FEE75C")
	fill(&cfg.Colors.Error, "#ED4245")
	fill(&cfg.Colors.Info, "#5865F2")
	fill(&cfg.Tickets.Category, "Tickets")
	fill(&cfg.Tickets.LogsChannel, "ticket-logs")

	if cfg.Cooldowns.Default <= 0 {
		cfg.Cooldowns.Default = 3
	}
	if cfg.Cooldowns.Fun <= 0 {
		cfg.Cooldowns.Fun = 5
	}
	if cfg.Cooldowns.Moderation <= 0 {
		cfg.Cooldowns.Moderation = 10
	}
	if len(cfg.Tickets.Types) == 0 {
		cfg.Tickets.Types = []model.TicketType{
			{Label: "General Support", Emoji: "🔧"},
			{Label: "Report Issue", Emoji: "⚠️"},
			{Label: "Feature Request", Emoji: "💡"},
		}
	}
	if len(cfg.EmbedTemplates) == 0 {
		cfg.EmbedTemplates = make(map[string]model.EmbedData, len(DefaultEmbedTemplates))
		for name, d := range DefaultEmbedTemplates {
			cfg.EmbedTemplates[name] = d.Clone()
		}
	}
}
