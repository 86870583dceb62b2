package ticket

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"community-bot/bot"
	"community-bot/ticketing"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const defaultTicketType = "General Support"

func handleOpenCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Failed to Create Ticket", "acknowledge the command", err)
	}
	return openTicket(s, i, b, opts.String("type", defaultTicketType), opts.String("reason", "No reason provided"))
}

// handleOpenButton answers ticket_open_default on the panel.
func handleOpenButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "default" {
		return nil
	}
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Failed to Create Ticket", "acknowledge the button", err)
	}
	return openTicket(s, i, b, defaultTicketType, "No reason provided")
}

// handleOpenSelect answers ticket_open_select on the panel.
func handleOpenSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "select" {
		return nil
	}
	ticketType := defaultTicketType
	if values := i.MessageComponentData().Values; len(values) > 0 && values[0] != "" {
		ticketType = values[0]
	}
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Failed to Create Ticket", "acknowledge the selection", err)
	}
	return openTicket(s, i, b, ticketType, "No reason provided")
}

// openTicket creates the channel, records the ticket and posts the welcome message. The
// interaction must already be deferred.
func openTicket(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, ticketType, reason string) error {
	ctx := context.Background()
	if i.GuildID == "" {
		return utils.NewValidationError("guild_only", "Server Only", "Tickets can only be opened in a server.")
	}
	settings, err := b.Tickets.Settings(ctx, i.GuildID)
	if err != nil {
		return err
	}
	if settings == nil {
		return utils.NewValidationError(ticketing.CodeNotSetUp, "Ticket System Not Set Up", "The ticket system has not been set up on this server.")
	}

	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		return utils.NewCollaboratorError("Failed to Create Ticket", "list channels", err)
	}
	category := findCategory(channels, settings.CategoryID)
	if category == nil {
		return utils.NewValidationError("category_not_found", "Ticket Category Not Found",
			"The ticket category could not be found. Please ask an admin to set up the ticket system properly.")
	}

	user := utils.Invoker(i)
	botID := ""
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ch, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 ticketing.ChannelName(user.Username, rng),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket for %s | Type: %s | Reason: %s", user.Username, ticketType, reason),
		ParentID:             category.ID,
		PermissionOverwrites: channelOverwrites(i.GuildID, user.ID, botID, settings.StaffRoleIDs),
	})
	if err != nil {
		return utils.NewCollaboratorError("Failed to Create Ticket", "create the ticket channel", err)
	}

	t, err := b.Tickets.Open(ctx, ticketing.OpenRequest{
		GuildID:   i.GuildID,
		ChannelID: ch.ID,
		UserID:    user.ID,
		Type:      ticketType,
		Name:      ch.Name,
	})
	if err != nil {
		if _, delErr := s.ChannelDelete(ch.ID); delErr != nil {
			b.Logger.Warn("failed to remove orphaned ticket channel", zap.String("channel_id", ch.ID), zap.Error(delErr))
		}
		return err
	}
	b.Logger.Info("ticket opened",
		zap.String("guild_id", t.GuildID),
		zap.String("channel_id", t.ChannelID),
		zap.String("user_id", t.UserID),
		zap.String("ticket_id", t.ID))

	_, err = s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content:    welcomeContent(user.ID, settings.StaffRoleIDs),
		Embeds:     []*discordgo.MessageEmbed{welcomeEmbed(b.Formatter, t, settings.WelcomeMessage, reason)},
		Components: []discordgo.MessageComponent{controlRow()},
	})
	if err != nil {
		b.Logger.Warn("failed to post ticket welcome message", zap.String("channel_id", ch.ID), zap.Error(err))
	}

	b.Audit.SendToChannel(i.GuildID, settings.LogsChannel, b.Formatter.Success("Ticket Created",
		fmt.Sprintf("A new ticket has been created: <#%s>", ch.ID),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{
			{Name: "Created By", Value: "<@" + user.ID + ">", Inline: true},
			{Name: "Ticket Type", Value: ticketType, Inline: true},
			{Name: "Ticket ID", Value: t.ID, Inline: true},
		}}))

	return utils.EditEmbed(s, i, b.Formatter.Success("Ticket Created", fmt.Sprintf("Your ticket has been created: <#%s>", ch.ID)))
}
