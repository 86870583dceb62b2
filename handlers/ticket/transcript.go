package ticket

import (
	"context"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/ticketing"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func handleTranscript(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	t, text, err := b.Tickets.Transcript(context.Background(), i.ChannelID)
	if err != nil {
		return err
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{b.Formatter.Success("Transcript Saved",
				"The transcript of this ticket is attached.",
				utils.EmbedOptions{Footer: "Ticket ID: " + t.ID})},
			Files: []*discordgo.File{{
				Name:        ticketing.TranscriptFileName(t, time.Now()),
				ContentType: "text/plain",
				Reader:      strings.NewReader(text),
			}},
		},
	})
	if err != nil {
		return utils.NewCollaboratorError("Failed to Save Transcript", "upload the transcript", err)
	}
	return nil
}

func handleTranscriptButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, _ []string) error {
	return handleTranscript(s, i, b)
}

// handleDelete removes the channel of a closed ticket. Staff, channel managers and the
// ticket creator may delete it.
func handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, _ []string) error {
	ctx := context.Background()
	t, err := b.Tickets.Get(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	if t.IsOpen() {
		return utils.NewValidationError("ticket_open", "Ticket Still Open", "Close the ticket before deleting it.")
	}

	userID := utils.InvokerID(i)
	allowed := userID == t.UserID || utils.HasPermission(i, discordgo.PermissionManageChannels)
	if !allowed && i.Member != nil {
		settings, err := b.Tickets.Settings(ctx, i.GuildID)
		if err != nil {
			return err
		}
		allowed = settings != nil && utils.IsStaff(i.Member.Roles, settings.StaffRoleIDs)
	}
	if !allowed {
		return utils.NewValidationError("missing_permission", "Permission Denied", "You don't have permission to delete this ticket.")
	}

	if err := utils.RespondEmbed(s, i, false, b.Formatter.Warning("Deleting Ticket", "This channel will be deleted in a few seconds.")); err != nil {
		return utils.NewCollaboratorError("Failed to Delete Ticket", "acknowledge the button", err)
	}
	time.AfterFunc(5*time.Second, func() {
		if _, err := s.ChannelDelete(t.ChannelID); err != nil {
			b.Logger.Warn("failed to delete ticket channel", zap.String("channel_id", t.ChannelID), zap.Error(err))
			return
		}
		b.Logger.Info("ticket channel deleted", zap.String("channel_id", t.ChannelID), zap.String("user_id", userID))
	})
	return nil
}
