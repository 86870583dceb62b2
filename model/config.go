package model

import "time"

// Palette holds the hex colours used for response embeds.
type Palette struct {
	Primary string `mapstructure:"primary"`
	Success string `mapstructure:"success"`
	Warning string `mapstructure:"warning"`
	Error   string `mapstructure:"error"`
	Info    string `mapstructure:"info"`
}

// TicketDefaults are applied when a guild has not run ticket-setup yet or left a field empty.
type TicketDefaults struct {
	Category       string       `mapstructure:"category"`
	LogsChannel    string       `mapstructure:"logs_channel"`
	WelcomeMessage string       `mapstructure:"welcome_message"`
	Types          []TicketType `mapstructure:"types"`
}

// Cooldowns are per-user command cooldowns in seconds, by command category.
type Cooldowns struct {
	Default    int `mapstructure:"default"`
	Fun        int `mapstructure:"fun"`
	Moderation int `mapstructure:"moderation"`
}

// Config stores the application configuration.
type Config struct {
	BotToken      string
	AppID         string
	GuildID       string
	DatabaseURL   string
	FallbackToMem bool
	RedisURL      string
	Port          int
	LogLevel      string
	LogChannelID  string
	// ConfigFile is the YAML file that was read, empty when none was found.
	ConfigFile    string

	SessionTTL     time.Duration
	ConfirmTimeout time.Duration

	Colors         Palette
	Tickets        TicketDefaults
	Cooldowns      Cooldowns
	EmbedTemplates map[string]EmbedData
}
