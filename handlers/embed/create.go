package embed

import (
	"context"
	"time"

	"community-bot/bot"
	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const createModalID = "embed_create_modal"

func handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	var preset model.EmbedData
	if name := opts.String("preset", ""); name != "" {
		preset = b.Config.EmbedTemplates[name].Clone()
	}
	return utils.RespondModal(s, i, createModalID, "Create Embed", formRows(preset, b.Config.Colors.Primary)...)
}

// handleEditDraft reopens the create modal with the current draft.
func handleEditDraft(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
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
	return utils.RespondModal(s, i, createModalID, "Edit Embed", formRows(draft.Data, b.Config.Colors.Primary)...)
}

func handleCreateModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "modal" {
		return nil
	}
	data, err := parseForm(utils.ModalValues(i), b.Config.Colors.Primary, time.Now())
	if err != nil {
		return err
	}
	if err := saveDraft(context.Background(), b, i, data); err != nil {
		return err
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    "Here's a preview of your embed:",
			Embeds:     []*discordgo.MessageEmbed{b.Formatter.EmbedFromData(data)},
			Components: []discordgo.MessageComponent{previewRow()},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}
