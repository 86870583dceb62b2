package moderation

import (
	"fmt"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

var countdownFrames = []string{
	"```\n🔴 NUKE INCOMING - 3 ```",
	"```\n🔴 NUKE INCOMING - 2 ```",
	"```\n🔴 NUKE INCOMING - 1 ```",
	"```\n💥💥💥💥💥💥💥💥💥💥 ```",
}

func handleNuke(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	channelID := opts.ID("channel")
	if channelID == "" {
		channelID = i.ChannelID
	}
	reason := opts.String("reason", defaultReason)

	pending := b.Pending.Register(utils.InvokerID(i), map[string]string{
		"channel": channelID,
		"reason":  reason,
	}, func(*utils.PendingAction) {
		expired := b.Formatter.Info("Nuke Cancelled", "Channel nuke operation timed out and was cancelled.")
		if err := utils.EditEmbed(s, i, expired, []discordgo.MessageComponent{}...); err != nil {
			b.Logger.Debug("failed to expire nuke prompt", zap.String("channel_id", channelID), zap.Error(err))
		}
	})

	prompt := b.Formatter.Warning("⚠️ Channel Nuke Confirmation", fmt.Sprintf(
		"Are you sure you want to nuke <#%s> and delete ALL messages?\n\n"+
			"This will create a clone of the channel with the same permissions and delete the original.\n\n"+
			"**This action cannot be undone!**\n\nReason: %s", channelID, reason))
	row := utils.ButtonRow(
		utils.Button{CustomID: "moderation_nuke_confirm_" + pending.Token, Label: "Confirm Nuke", Style: discordgo.DangerButton},
		utils.Button{CustomID: "moderation_nuke_cancel_" + pending.Token, Label: "Cancel", Style: discordgo.SecondaryButton},
	)
	if err := utils.RespondEmbed(s, i, true, prompt, row); err != nil {
		b.Pending.Resolve(pending.Token)
		return utils.NewCollaboratorError("Nuke Failed", "ask for confirmation", err)
	}
	return nil
}

// handleNukeButton serves moderation_nuke_confirm_<token> and moderation_nuke_cancel_<token>.
func handleNukeButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) < 2 {
		return nil
	}
	token := args[1]
	if a := b.Pending.Peek(token); a != nil && a.OwnerID != utils.InvokerID(i) {
		return utils.NewValidationError("not_owner", "Not Your Confirmation", "Only the person who started this nuke can answer it.")
	}

	switch args[0] {
	case "cancel":
		if b.Pending.Resolve(token) == nil {
			return utils.NewValidationError("confirmation_expired", "Confirmation Expired", "This confirmation has expired. Please try again.")
		}
		return utils.UpdateMessage(s, i, b.Formatter.Info("Nuke Cancelled", "Channel nuke operation has been cancelled."))
	case "confirm":
		action := b.Pending.Resolve(token)
		if action == nil {
			return utils.NewValidationError("confirmation_expired", "Confirmation Expired", "This confirmation has expired. Please try again.")
		}
		channelID, reason := action.Data["channel"], action.Data["reason"]
		if err := utils.UpdateMessage(s, i, b.Formatter.Warning("Nuking in Progress",
			fmt.Sprintf("Nuking <#%s>... This may take a moment.", channelID))); err != nil {
			return utils.NewCollaboratorError("Nuke Failed", "acknowledge the confirmation", err)
		}
		return nukeChannel(s, i, b, channelID, reason)
	}
	return nil
}

// cloneData copies the settings a nuked channel keeps.
func cloneData(ch *discordgo.Channel) discordgo.GuildChannelCreateData {
	return discordgo.GuildChannelCreateData{
		Name:                 ch.Name,
		Type:                 ch.Type,
		Topic:                ch.Topic,
		Bitrate:              ch.Bitrate,
		UserLimit:            ch.UserLimit,
		RateLimitPerUser:     ch.RateLimitPerUser,
		Position:             ch.Position,
		PermissionOverwrites: ch.PermissionOverwrites,
		ParentID:             ch.ParentID,
		NSFW:                 ch.NSFW,
	}
}

func nukeChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, channelID, reason string) error {
	moderator := utils.Invoker(i)
	original, err := s.Channel(channelID)
	if err != nil {
		return utils.NewCollaboratorError("Nuke Failed", "nuke channel", err)
	}
	clone, err := s.GuildChannelCreateComplex(original.GuildID, cloneData(original))
	if err != nil {
		return utils.NewCollaboratorError("Nuke Failed", "nuke channel", err)
	}

	if msg, err := s.ChannelMessageSend(clone.ID, "**CHANNEL NUKE INCOMING**"); err == nil {
		for _, frame := range countdownFrames {
			time.Sleep(time.Second)
			if _, err := s.ChannelMessageEdit(clone.ID, msg.ID, frame); err != nil {
				break
			}
		}
	}

	if _, err := s.ChannelDelete(original.ID); err != nil {
		return utils.NewCollaboratorError("Nuke Failed", "nuke channel", err)
	}
	b.Logger.Info("channel nuked",
		zap.String("guild_id", original.GuildID),
		zap.String("channel_id", original.ID),
		zap.String("clone_id", clone.ID),
		zap.String("moderator_id", moderator.ID))

	_, err = s.ChannelMessageSendEmbed(clone.ID, b.Formatter.Success("💥 Channel Nuked", fmt.Sprintf(
		"This channel has been nuked by <@%s>.\n\n**Reason:** %s\n\nAll previous messages have been deleted.", moderator.ID, reason)))
	if err != nil {
		b.Logger.Warn("failed to announce nuke", zap.String("channel_id", clone.ID), zap.Error(err))
	}

	b.Audit.ModLog(original.GuildID, modLogEmbed(b, utils.TypeError, "Channel Nuked",
		fmt.Sprintf("**#%s** was nuked by %s", original.Name, moderator.String()),
		"Action by "+moderator.String(),
		field("Reason", reason),
		field("New Channel", "<#"+clone.ID+">")))
	return nil
}
