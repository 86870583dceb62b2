package embed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func handleSendCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx := context.Background()
	_, opts := utils.CommandOptions(i)
	channelID := opts.ID("channel")
	if err := checkCanSend(s, channelID); err != nil {
		return err
	}

	if name := opts.String("template", ""); name != "" {
		tpl, err := b.Stores.Templates.Get(ctx, i.GuildID, name)
		if err != nil {
			return utils.NewBackendError("load template", err)
		}
		if tpl == nil {
			return utils.NewValidationError("template_not_found", "Template Not Found", fmt.Sprintf("Could not find a template named \"%s\".", name))
		}
		if err := sendEmbed(ctx, s, i, b, channelID, tpl.Data); err != nil {
			return err
		}
		return utils.RespondEmbed(s, i, true, b.Formatter.Success("Embed Sent", fmt.Sprintf("Embed has been sent to <#%s>.", channelID)))
	}

	draft, err := loadDraft(ctx, b, utils.InvokerID(i))
	if err != nil {
		return err
	}
	if draft == nil {
		templates, err := b.Stores.Templates.List(ctx, i.GuildID)
		if err != nil {
			return utils.NewBackendError("list templates", err)
		}
		if len(templates) == 0 {
			return utils.NewValidationError("no_embed", "No Embed Available",
				"You don't have any embed to send. Create one first with `/embed-create` or create a template.")
		}
		lines := make([]string, 0, len(templates))
		for n, t := range templates {
			lines = append(lines, fmt.Sprintf("%d. **%s**", n+1, t.Name))
		}
		return utils.RespondEmbed(s, i, true, b.Formatter.Info("Available Templates",
			utils.Truncate("Use `/embed-send channel:#channel template:name` to send a template.\n\n"+strings.Join(lines, "\n"), 4096)))
	}

	if err := sendEmbed(ctx, s, i, b, channelID, draft.Data); err != nil {
		return err
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Embed Sent", fmt.Sprintf("Embed has been sent to <#%s>.", channelID)))
}

// handleSendButton asks where to send the current draft.
func handleSendButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) > 0 {
		return nil
	}
	draft, err := loadDraft(context.Background(), b, utils.InvokerID(i))
	if err != nil {
		return err
	}
	if draft == nil {
		return errNoDraft()
	}
	return askChannel(s, i, "Choose a channel to send your embed to:")
}

func askChannel(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{channelSelectRow()},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func handleSendChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "channel" {
		return nil
	}
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return utils.NewValidationError("invalid_channel", "Invalid Channel", "Invalid channel selected.")
	}
	channelID := values[0]
	if err := checkCanSend(s, channelID); err != nil {
		return err
	}

	ctx := context.Background()
	draft, err := loadDraft(ctx, b, utils.InvokerID(i))
	if err != nil {
		return err
	}
	if draft == nil {
		return errNoDraft()
	}
	if err := sendEmbed(ctx, s, i, b, channelID, draft.Data); err != nil {
		return err
	}
	return utils.UpdateMessage(s, i, b.Formatter.Success("Embed Sent", fmt.Sprintf("Embed has been sent to <#%s>.", channelID)))
}

// checkCanSend rejects channels the bot cannot post in. Missing state is not an error; the
// send itself reports it.
func checkCanSend(s *discordgo.Session, channelID string) error {
	if s.State == nil || s.State.User == nil {
		return nil
	}
	perms, err := s.State.UserChannelPermissions(s.State.User.ID, channelID)
	if err != nil {
		return nil
	}
	if perms&discordgo.PermissionSendMessages == 0 {
		return utils.NewValidationError("missing_permission", "Missing Permissions", "I don't have permission to send messages in that channel.")
	}
	return nil
}

// sendEmbed posts the embed and records it for later edits.
func sendEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, channelID string, data model.EmbedData) error {
	msg, err := s.ChannelMessageSendEmbed(channelID, b.Formatter.EmbedFromData(data))
	if err != nil {
		return utils.NewCollaboratorError("Failed to Send Embed", "send the embed", err)
	}
	_, err = b.Stores.SentEmbeds.Create(ctx, &model.SentEmbed{
		MessageID: msg.ID,
		ChannelID: channelID,
		GuildID:   i.GuildID,
		Data:      data,
		CreatedBy: utils.InvokerID(i),
	})
	if err != nil {
		// the message is out; only edits through the stored payload are affected
		b.Logger.Error("failed to record sent embed", zap.String("message_id", msg.ID), zap.Error(err))
	}
	return nil
}

// fetchOwnEmbed loads a message the bot posted that carries an embed.
func fetchOwnEmbed(s *discordgo.Session, channelID, messageID, verb string) (*discordgo.Message, error) {
	msg, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, utils.NewCollaboratorError("Error", "fetch message", err)
	}
	if len(msg.Embeds) == 0 {
		return nil, utils.NewValidationError("no_embed", "No Embed Found", "The specified message does not contain an embed.")
	}
	if s.State != nil && s.State.User != nil && (msg.Author == nil || msg.Author.ID != s.State.User.ID) {
		return nil, utils.NewValidationError("not_own_message", "Cannot "+verb, fmt.Sprintf("I can only %s embeds that I have sent.", strings.ToLower(verb)))
	}
	return msg, nil
}

// messageRef reads the message-id option, which may also be a message link. The channel
// option applies to bare ids and defaults to the current channel.
func messageRef(i *discordgo.InteractionCreate, opts utils.Options) (channelID, messageID string, err error) {
	channelID = opts.ID("channel")
	if channelID == "" {
		channelID = i.ChannelID
	}
	channelID, messageID, ok := utils.ParseMessageRef(opts.String("message-id", ""), channelID)
	if !ok {
		return "", "", utils.NewValidationError("invalid_message", "Invalid Message",
			"Please provide a valid message ID or message link.")
	}
	return channelID, messageID, nil
}

func handleEditCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	channelID, messageID, err := messageRef(i, opts)
	if err != nil {
		return err
	}

	msg, err := fetchOwnEmbed(s, channelID, messageID, "Edit")
	if err != nil {
		return err
	}
	sent, err := b.Stores.SentEmbeds.Get(context.Background(), messageID)
	if err != nil {
		return utils.NewBackendError("load sent embed", err)
	}
	data := utils.DataFromEmbed(msg.Embeds[0])
	if sent != nil {
		data = sent.Data
	}
	customID := fmt.Sprintf("embed_edit_modal_%s_%s", messageID, channelID)
	return utils.RespondModal(s, i, customID, "Edit Embed", formRows(data, b.Config.Colors.Primary)...)
}

// handleEditModal serves embed_edit_modal_<message>_<channel>.
func handleEditModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) != 3 || args[0] != "modal" {
		return nil
	}
	messageID, channelID := args[1], args[2]
	data, err := parseForm(utils.ModalValues(i), b.Config.Colors.Primary, time.Now())
	if err != nil {
		return err
	}

	if _, err := s.ChannelMessageEditEmbed(channelID, messageID, b.Formatter.EmbedFromData(data)); err != nil {
		return utils.NewCollaboratorError("Error", "update embed", err)
	}

	ctx := context.Background()
	userID := utils.InvokerID(i)
	updated, err := b.Stores.SentEmbeds.Update(ctx, messageID, data, userID)
	if err != nil {
		return utils.NewBackendError("update sent embed", err)
	}
	if updated == nil {
		_, err = b.Stores.SentEmbeds.Create(ctx, &model.SentEmbed{
			MessageID: messageID,
			ChannelID: channelID,
			GuildID:   i.GuildID,
			Data:      data,
			CreatedBy: userID,
			UpdatedBy: userID,
		})
		if err != nil {
			b.Logger.Warn("failed to start tracking edited embed", zap.String("message_id", messageID), zap.Error(err))
		}
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Embed Updated", "The embed has been successfully updated."))
}

func handleDeleteCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	channelID, messageID, err := messageRef(i, opts)
	if err != nil {
		return err
	}

	if _, err := fetchOwnEmbed(s, channelID, messageID, "Delete"); err != nil {
		return err
	}
	if err := s.ChannelMessageDelete(channelID, messageID); err != nil {
		return utils.NewCollaboratorError("Error", "delete message", err)
	}
	if _, err := b.Stores.SentEmbeds.Delete(context.Background(), messageID); err != nil {
		return utils.NewBackendError("delete sent embed", err)
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Embed Deleted", "The embed has been successfully deleted."))
}
