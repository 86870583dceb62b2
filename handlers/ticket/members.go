package ticket

import (
	"context"
	"fmt"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx := context.Background()
	userID := utils.InvokerID(i)
	t, err := b.Tickets.Claim(ctx, i.ChannelID, userID)
	if err != nil {
		return err
	}

	claim := b.Formatter.Success("Ticket Claimed", fmt.Sprintf("This ticket has been claimed by <@%s>. They will be assisting you.", userID))
	if _, err := s.ChannelMessageSendEmbed(i.ChannelID, claim); err != nil {
		b.Logger.Warn("failed to announce claim", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
	logTicketEvent(ctx, b, t.GuildID, b.Formatter.Info("Ticket Claimed", fmt.Sprintf("<@%s> claimed ticket %s", userID, t.ID)))

	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Ticket Claimed", "You have claimed this ticket."))
}

func handleClaimButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, _ []string) error {
	return handleClaim(s, i, b)
}

func handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx := context.Background()
	_, opts := utils.CommandOptions(i)
	target := opts.ID("user")
	actor := utils.InvokerID(i)

	t, err := b.Tickets.AddParticipant(ctx, i.ChannelID, target, actor)
	if err != nil {
		return err
	}
	if err := s.ChannelPermissionSet(i.ChannelID, target, discordgo.PermissionOverwriteTypeMember, memberAllow, 0); err != nil {
		return utils.NewCollaboratorError("Failed to Add User", "update channel permissions", err)
	}
	if _, err := s.ChannelMessageSend(i.ChannelID, fmt.Sprintf("<@%s> has been added to the ticket by <@%s>.", target, actor)); err != nil {
		b.Logger.Warn("failed to announce added user", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
	logTicketEvent(ctx, b, t.GuildID, b.Formatter.Info("User Added to Ticket", fmt.Sprintf("<@%s> added <@%s> to ticket %s", actor, target, t.ID)))

	return utils.RespondEmbed(s, i, false, b.Formatter.Success("User Added", fmt.Sprintf("<@%s> has been added to the ticket.", target)))
}

func handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx := context.Background()
	_, opts := utils.CommandOptions(i)
	target := opts.ID("user")
	actor := utils.InvokerID(i)

	t, err := b.Tickets.RemoveParticipant(ctx, i.ChannelID, target, actor)
	if err != nil {
		return err
	}
	if err := s.ChannelPermissionDelete(i.ChannelID, target); err != nil {
		return utils.NewCollaboratorError("Failed to Remove User", "update channel permissions", err)
	}
	if _, err := s.ChannelMessageSend(i.ChannelID, fmt.Sprintf("<@%s> has been removed from the ticket by <@%s>.", target, actor)); err != nil {
		b.Logger.Warn("failed to announce removed user", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
	logTicketEvent(ctx, b, t.GuildID, b.Formatter.Info("User Removed from Ticket", fmt.Sprintf("<@%s> removed <@%s> from ticket %s", actor, target, t.ID)))

	return utils.RespondEmbed(s, i, false, b.Formatter.Success("User Removed", fmt.Sprintf("<@%s> has been removed from the ticket.", target)))
}

func handleRenameCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	if name := opts.String("name", ""); name != "" {
		return renameTicket(s, i, b, name)
	}
	if _, err := b.Tickets.Get(context.Background(), i.ChannelID); err != nil {
		return err
	}
	return utils.RespondModal(s, i, "ticket_rename_modal", "Rename Ticket", renameModalRow())
}

func handleRenameModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "modal" {
		return nil
	}
	return renameTicket(s, i, b, utils.ModalValues(i)["ticketName"])
}

func renameTicket(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, name string) error {
	ctx := context.Background()
	actor := utils.InvokerID(i)
	t, err := b.Tickets.Rename(ctx, i.ChannelID, name, actor)
	if err != nil {
		return err
	}
	if _, err := s.ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{Name: t.Name}); err != nil {
		return utils.NewCollaboratorError("Failed to Rename", "rename the channel", err)
	}
	logTicketEvent(ctx, b, t.GuildID, b.Formatter.Info("Ticket Renamed", fmt.Sprintf("<@%s> renamed ticket %s to `%s`", actor, t.ID, t.Name)))

	return utils.RespondEmbed(s, i, false, b.Formatter.Success("Ticket Renamed", fmt.Sprintf("The ticket has been renamed to `%s`.", t.Name)))
}
