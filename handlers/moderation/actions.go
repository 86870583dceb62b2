package moderation

import (
	"fmt"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func handleBan(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	_, opts := utils.CommandOptions(i)
	reason := opts.String("reason", defaultReason)
	days := int(opts.Int("days", 0))
	if days < 0 || days > 7 {
		return utils.NewValidationError("invalid_days", "Invalid Days", "Message deletion must be between 0 and 7 days.")
	}

	target, err := targetMember(s, i, opts)
	if err != nil {
		return err
	}
	if err := guard(s, i, banAction, target); err != nil {
		return err
	}
	user, moderator := target.User, utils.Invoker(i)

	notify(s, b, user, b.Formatter.Error("You have been banned from "+guildName(s, i.GuildID), "**Reason:** "+reason))

	if err := s.GuildBanCreateWithReason(i.GuildID, user.ID, fmt.Sprintf("%s - Banned by %s", reason, moderator.String()), days); err != nil {
		return utils.NewCollaboratorError("Ban Failed", "ban the user", err)
	}
	b.Logger.Info("member banned",
		zap.String("guild_id", i.GuildID),
		zap.String("user_id", user.ID),
		zap.String("moderator_id", moderator.ID))

	deleted := ""
	if days > 0 {
		deleted = fmt.Sprintf(" and deleted their messages from the last %d day(s)", days)
	}
	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeError, "User Banned",
		fmt.Sprintf("**%s** (%s) was banned by %s", user.String(), user.ID, moderator.String()),
		"Banned by "+moderator.String(),
		field("Reason", reason),
		field("Message Deletion", fmt.Sprintf("%d day(s)", days))))

	return utils.EditEmbed(s, i, b.Formatter.Success("User Banned",
		fmt.Sprintf("Successfully banned %s%s.", user.String(), deleted),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{field("Reason", reason)}}))
}

func handleKick(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	_, opts := utils.CommandOptions(i)
	reason := opts.String("reason", defaultReason)

	target, err := targetMember(s, i, opts)
	if err != nil {
		return err
	}
	if err := guard(s, i, kickAction, target); err != nil {
		return err
	}
	user, moderator := target.User, utils.Invoker(i)

	notify(s, b, user, b.Formatter.Warning("You have been kicked from "+guildName(s, i.GuildID), "**Reason:** "+reason))

	if err := s.GuildMemberDeleteWithReason(i.GuildID, user.ID, fmt.Sprintf("%s - Kicked by %s", reason, moderator.String())); err != nil {
		return utils.NewCollaboratorError("Kick Failed", "kick the user", err)
	}
	b.Logger.Info("member kicked",
		zap.String("guild_id", i.GuildID),
		zap.String("user_id", user.ID),
		zap.String("moderator_id", moderator.ID))

	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeWarning, "User Kicked",
		fmt.Sprintf("**%s** (%s) was kicked by %s", user.String(), user.ID, moderator.String()),
		"Kicked by "+moderator.String(),
		field("Reason", reason)))

	return utils.EditEmbed(s, i, b.Formatter.Success("User Kicked",
		fmt.Sprintf("Successfully kicked %s.", user.String()),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{field("Reason", reason)}}))
}

func handleMute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	_, opts := utils.CommandOptions(i)
	reason := opts.String("reason", defaultReason)

	duration, clamped, err := utils.ParseTimeout(opts.String("duration", ""))
	if err != nil {
		return utils.NewValidationError("invalid_duration", "Invalid Duration", "Please provide a valid duration (e.g. 10s, 1m, 1h, 1d).")
	}

	target, err := targetMember(s, i, opts)
	if err != nil {
		return err
	}
	if err := guard(s, i, timeoutAction, target); err != nil {
		return err
	}
	user, moderator := target.User, utils.Invoker(i)

	until := time.Now().Add(duration)
	formatted := utils.FormatDuration(duration)
	expires := fmt.Sprintf("<t:%d:R>", until.Unix())

	notify(s, b, user, b.Formatter.Warning("You have been timed out in "+guildName(s, i.GuildID),
		fmt.Sprintf("**Reason:** %s\n**Duration:** %s\n**Expires:** %s", reason, formatted, expires)))

	if err := s.GuildMemberTimeout(i.GuildID, user.ID, &until); err != nil {
		return utils.NewCollaboratorError("Timeout Failed", "timeout the user", err)
	}
	b.Logger.Info("member timed out",
		zap.String("guild_id", i.GuildID),
		zap.String("user_id", user.ID),
		zap.Duration("duration", duration),
		zap.String("moderator_id", moderator.ID))

	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeWarning, "User Timed Out",
		fmt.Sprintf("**%s** (%s) was timed out by %s", user.String(), user.ID, moderator.String()),
		"Timed out by "+moderator.String(),
		field("Reason", reason),
		field("Duration", formatted),
		field("Expires", expires)))

	description := fmt.Sprintf("Successfully timed out %s for %s.", user.String(), formatted)
	if clamped {
		description += "\nThe duration was capped at the 28 day maximum."
	}
	return utils.EditEmbed(s, i, b.Formatter.Success("User Timed Out", description,
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{field("Reason", reason), field("Expires", expires)}}))
}

func handleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	_, opts := utils.CommandOptions(i)
	reason := opts.String("reason", defaultReason)

	target, err := targetMember(s, i, opts)
	if err != nil {
		return err
	}
	if err := guard(s, i, untimeoutAction, target); err != nil {
		return err
	}
	if !timedOut(target, time.Now()) {
		return utils.NewValidationError("not_timed_out", "Not Timed Out", "This user is not currently timed out.")
	}
	user, moderator := target.User, utils.Invoker(i)

	if err := s.GuildMemberTimeout(i.GuildID, user.ID, nil); err != nil {
		return utils.NewCollaboratorError("Unmute Failed", "remove timeout from the user", err)
	}
	b.Logger.Info("member timeout removed",
		zap.String("guild_id", i.GuildID),
		zap.String("user_id", user.ID),
		zap.String("moderator_id", moderator.ID))

	notify(s, b, user, b.Formatter.Success("Your timeout has been removed in "+guildName(s, i.GuildID), "**Reason:** "+reason))

	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeSuccess, "Timeout Removed",
		fmt.Sprintf("Timeout was removed from **%s** (%s) by %s", user.String(), user.ID, moderator.String()),
		"Action by "+moderator.String(),
		field("Reason", reason)))

	return utils.EditEmbed(s, i, b.Formatter.Success("Timeout Removed",
		fmt.Sprintf("Successfully removed timeout from %s.", user.String()),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{field("Reason", reason)}}))
}

func timedOut(m *discordgo.Member, now time.Time) bool {
	return m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now)
}
