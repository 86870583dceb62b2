package utils

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type LogLevel string

const (
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

func getColor(level LogLevel) int {
	switch level {
	case Info:
		return 3066993 // Green
	case Warn:
		return 15105570 // Orange
	case Error:
		return 15158332 // Red
	default:
		return 3447003 // Blue
	}
}

// ChannelLogger mirrors important events into Discord channels as embeds. The system channel
// is optional; without it only the zap log line is written.
type ChannelLogger struct {
	Session         *discordgo.Session
	SystemChannelID string
	Logger          *zap.Logger
}

func logEmbed(level LogLevel, module, operation, extraInfo string) *discordgo.MessageEmbed {
	if extraInfo == "" {
		extraInfo = "-"
	}
	return &discordgo.MessageEmbed{
		Title: string(level) + " Log",
		Color: getColor(level),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Module", Value: module, Inline: true},
			{Name: "Operation", Value: operation, Inline: true},
			{Name: "Details", Value: truncate(extraInfo, 1024)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func (l *ChannelLogger) sendLog(level LogLevel, module, operation, extraInfo string) {
	fields := []zap.Field{zap.String("module", module), zap.String("operation", operation), zap.String("details", extraInfo)}
	switch level {
	case Error:
		l.Logger.Error("system log", fields...)
	case Warn:
		l.Logger.Warn("system log", fields...)
	default:
		l.Logger.Info("system log", fields...)
	}

	if l.Session == nil || l.SystemChannelID == "" {
		return
	}
	if _, err := l.Session.ChannelMessageSendEmbed(l.SystemChannelID, logEmbed(level, module, operation, extraInfo)); err != nil {
		l.Logger.Warn("failed to send system log", zap.String("channel_id", l.SystemChannelID), zap.Error(err))
	}
}

func (l *ChannelLogger) LogInfo(module, operation, extraInfo string) {
	l.sendLog(Info, module, operation, extraInfo)
}

func (l *ChannelLogger) LogWarn(module, operation, extraInfo string) {
	l.sendLog(Warn, module, operation, extraInfo)
}

func (l *ChannelLogger) LogError(module, operation, extraInfo string) {
	l.sendLog(Error, module, operation, extraInfo)
}

// FindTextChannel resolves a channel by id or, failing that, by case-insensitive name.
func FindTextChannel(channels []*discordgo.Channel, idOrName string) *discordgo.Channel {
	if idOrName == "" {
		return nil
	}
	name := strings.TrimPrefix(strings.ToLower(idOrName), "#")
	for _, c := range channels {
		if c.ID == idOrName {
			return c
		}
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildText && strings.ToLower(c.Name) == name {
			return c
		}
	}
	return nil
}

// SendToChannel posts embed to the channel named by idOrName in the guild. A missing channel
// is not an error; the audit trail is best effort.
func (l *ChannelLogger) SendToChannel(guildID, idOrName string, embed *discordgo.MessageEmbed) {
	if l.Session == nil {
		return
	}
	channels, err := l.Session.GuildChannels(guildID)
	if err != nil {
		l.Logger.Warn("failed to list channels for log", zap.String("guild_id", guildID), zap.Error(err))
		return
	}
	ch := FindTextChannel(channels, idOrName)
	if ch == nil {
		return
	}
	if _, err := l.Session.ChannelMessageSendEmbed(ch.ID, embed); err != nil {
		l.Logger.Warn("failed to send log embed", zap.String("channel_id", ch.ID), zap.Error(err))
	}
}

// ModLog posts to the first channel named mod-logs, falling back to logs.
func (l *ChannelLogger) ModLog(guildID string, embed *discordgo.MessageEmbed) {
	if l.Session == nil {
		return
	}
	channels, err := l.Session.GuildChannels(guildID)
	if err != nil {
		l.Logger.Warn("failed to list channels for mod log", zap.String("guild_id", guildID), zap.Error(err))
		return
	}
	ch := FindTextChannel(channels, "mod-logs")
	if ch == nil {
		ch = FindTextChannel(channels, "logs")
	}
	if ch == nil {
		return
	}
	if _, err := l.Session.ChannelMessageSendEmbed(ch.ID, embed); err != nil {
		l.Logger.Warn("failed to send mod log", zap.String("channel_id", ch.ID), zap.Error(err))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	return truncate(s, n)
}
