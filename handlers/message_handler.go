package handlers

import (
	"context"
	"time"

	"community-bot/bot"
	"community-bot/model"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// handleMessageCreate records messages posted in open ticket channels for the transcript.
func handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stored, err := b.Tickets.AppendMessage(ctx, m.ChannelID, transcriptMessage(m.Message))
	if err != nil {
		b.Logger.Warn("failed to append ticket message",
			zap.String("channel_id", m.ChannelID),
			zap.String("message_id", m.ID),
			zap.Error(err))
		return
	}
	if stored {
		b.Logger.Debug("captured ticket message", zap.String("channel_id", m.ChannelID))
	}
}

func transcriptMessage(m *discordgo.Message) model.TicketMessage {
	msg := model.TicketMessage{
		ID:        m.ID,
		AuthorID:  m.Author.ID,
		Author:    m.Author.Username,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, a.URL)
	}
	return msg
}
