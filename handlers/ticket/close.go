package ticket

import (
	"context"
	"fmt"

	"community-bot/bot"
	"community-bot/ticketing"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func handleCloseCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	return askCloseConfirmation(s, i, b, opts.String("reason", "No reason provided"))
}

// handleCloseButton serves ticket_close, ticket_close_confirm_<token> and
// ticket_close_cancel_<token>.
func handleCloseButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 {
		return askCloseConfirmation(s, i, b, "Closed via button")
	}
	token := ""
	if len(args) > 1 {
		token = args[1]
	}
	switch args[0] {
	case "confirm":
		return confirmClose(s, i, b, token)
	case "cancel":
		if _, err := takeConfirmation(b.Pending, token, utils.InvokerID(i)); err != nil {
			return err
		}
		return utils.UpdateMessage(s, i, b.Formatter.Info("Cancelled", "Ticket closure cancelled."))
	}
	return nil
}

// takeConfirmation resolves a close prompt on behalf of userID. Only the member who asked to
// close may answer, and an expired or unknown token is reported as expired.
func takeConfirmation(p *utils.Pending, token, userID string) (*utils.PendingAction, error) {
	if a := p.Peek(token); a != nil && a.OwnerID != userID {
		return nil, utils.NewValidationError("not_owner", "Not Your Confirmation", "Only the person who asked to close this ticket can answer this prompt.")
	}
	action := p.Resolve(token)
	if action == nil {
		return nil, utils.NewValidationError("confirmation_expired", "Confirmation Expired", "This confirmation has expired. Please try again.")
	}
	return action, nil
}

func askCloseConfirmation(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, reason string) error {
	t, err := b.Tickets.Get(context.Background(), i.ChannelID)
	if err != nil {
		return err
	}
	if !t.IsOpen() {
		return utils.NewValidationError(ticketing.CodeTicketClosed, "Ticket Already Closed", "This ticket is already closed.")
	}

	pending := b.Pending.Register(utils.InvokerID(i), map[string]string{
		"channel": i.ChannelID,
		"reason":  reason,
	}, func(*utils.PendingAction) {
		expired := b.Formatter.Info("Confirmation Timed Out", "The ticket was not closed.")
		if err := utils.EditEmbed(s, i, expired, []discordgo.MessageComponent{}...); err != nil {
			b.Logger.Debug("failed to expire close prompt", zap.String("channel_id", i.ChannelID), zap.Error(err))
		}
	})

	embed, row := closeConfirmPrompt(b.Formatter, pending.Token)
	if err := utils.RespondEmbed(s, i, false, embed, row); err != nil {
		b.Pending.Resolve(pending.Token)
		return utils.NewCollaboratorError("Failed to Close", "ask for confirmation", err)
	}
	return nil
}

func confirmClose(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, token string) error {
	userID := utils.InvokerID(i)
	action, err := takeConfirmation(b.Pending, token, userID)
	if err != nil {
		return err
	}

	if err := utils.UpdateMessage(s, i, b.Formatter.Info("Closing Ticket", "Closing ticket...")); err != nil {
		return utils.NewCollaboratorError("Failed to Close", "acknowledge the confirmation", err)
	}
	if err := closeTicket(s, i, b, action.Data["channel"], userID, action.Data["reason"]); err != nil {
		return err
	}
	return utils.EditEmbed(s, i, b.Formatter.Success("Ticket Closed", "The ticket has been closed."))
}

func closeTicket(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, channelID, userID, reason string) error {
	ctx := context.Background()
	t, err := b.Tickets.Close(ctx, channelID, userID, reason)
	if err != nil {
		return err
	}
	b.Logger.Info("ticket closed",
		zap.String("guild_id", t.GuildID),
		zap.String("channel_id", t.ChannelID),
		zap.String("user_id", userID))

	_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{closingEmbed(b.Formatter, userID, reason)},
		Components: []discordgo.MessageComponent{closedRow()},
	})
	if err != nil {
		b.Logger.Warn("failed to post closing message", zap.String("channel_id", channelID), zap.Error(err))
	}

	logTicketEvent(ctx, b, t.GuildID, b.Formatter.Error("Ticket Closed", fmt.Sprintf("Ticket %s has been closed.", t.ID),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Channel", Value: "#" + t.Name, Inline: true},
			{Name: "Closed By", Value: "<@" + userID + ">", Inline: true},
			{Name: "Reason", Value: reason, Inline: true},
		}}))
	return nil
}

// logTicketEvent mirrors a ticket event into the guild's ticket log channel.
func logTicketEvent(ctx context.Context, b *bot.Bot, guildID string, embed *discordgo.MessageEmbed) {
	settings, err := b.Tickets.Settings(ctx, guildID)
	if err != nil {
		b.Logger.Warn("failed to load ticket settings for log", zap.String("guild_id", guildID), zap.Error(err))
		return
	}
	if settings == nil || settings.LogsChannel == "" {
		return
	}
	b.Audit.SendToChannel(guildID, settings.LogsChannel, embed)
}
