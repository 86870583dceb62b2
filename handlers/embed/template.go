package embed

import (
	"context"
	"errors"
	"fmt"

	"community-bot/bot"
	"community-bot/model"
	"community-bot/utils"
	"community-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

const templateSaveModalID = "embed_template_save_modal"

func handleTemplateCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx := context.Background()
	sub, opts := utils.CommandOptions(i)

	switch sub {
	case "list":
		return listTemplates(ctx, s, i, b)
	case "create":
		name, err := createTemplate(ctx, b, i, opts.String("name", ""))
		if err != nil {
			return err
		}
		return utils.RespondEmbed(s, i, true, b.Formatter.Success("Template Saved", fmt.Sprintf("Embed template \"%s\" has been saved.", name)))
	case "delete":
		name := opts.String("name", "")
		ok, err := b.Stores.Templates.Delete(ctx, i.GuildID, name)
		if err != nil {
			return utils.NewBackendError("delete template", err)
		}
		if !ok {
			return utils.NewValidationError("template_not_found", "Template Not Found", fmt.Sprintf("Could not find a template named \"%s\".", name))
		}
		return utils.RespondEmbed(s, i, true, b.Formatter.Success("Template Deleted", fmt.Sprintf("Template **%s** has been deleted.", name)))
	}
	return nil
}

func listTemplates(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	templates, err := b.Stores.Templates.List(ctx, i.GuildID)
	if err != nil {
		return utils.NewBackendError("list templates", err)
	}
	if len(templates) == 0 {
		return utils.RespondEmbed(s, i, true, b.Formatter.Info("No Templates Found",
			"You haven't created any embed templates yet. Use `/embed-template create` to create one."))
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(templates))
	for n, t := range templates {
		if n == 25 {
			break
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", n+1, t.Name),
			Value: fmt.Sprintf("Created by <@%s> on <t:%d:D>", t.CreatedBy, t.CreatedAt.Unix()),
		})
	}
	embed := b.Formatter.Info("Embed Templates", "Here are your saved embed templates:", utils.EmbedOptions{Fields: fields})
	return utils.RespondEmbed(s, i, true, embed, templateSelectRow(templates))
}

// createTemplate saves the invoker's draft under name.
func createTemplate(ctx context.Context, b *bot.Bot, i *discordgo.InteractionCreate, name string) (string, error) {
	name, err := validTemplateName(name)
	if err != nil {
		return "", err
	}
	exists := utils.NewValidationError("template_exists", "Template Already Exists",
		fmt.Sprintf("A template with the name \"%s\" already exists. Please choose a different name.", name))

	existing, err := b.Stores.Templates.Get(ctx, i.GuildID, name)
	if err != nil {
		return "", utils.NewBackendError("load template", err)
	}
	if existing != nil {
		return "", exists
	}
	draft, err := loadDraft(ctx, b, utils.InvokerID(i))
	if err != nil {
		return "", err
	}
	if draft == nil {
		return "", errNoDraft()
	}

	_, err = b.Stores.Templates.Create(ctx, &model.EmbedTemplate{
		GuildID:   i.GuildID,
		Name:      name,
		Data:      draft.Data,
		CreatedBy: utils.InvokerID(i),
	})
	if errors.Is(err, database.ErrDuplicate) {
		return "", exists
	}
	if err != nil {
		return "", utils.NewBackendError("save template", err)
	}
	return name, nil
}

// handleTemplateSelect previews the template picked from the list.
func handleTemplateSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "select" {
		return nil
	}
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return nil
	}
	name := values[0]
	tpl, err := b.Stores.Templates.Get(context.Background(), i.GuildID, name)
	if err != nil {
		return utils.NewBackendError("load template", err)
	}
	if tpl == nil {
		return utils.UpdateMessage(s, i, b.Formatter.Error("Template Not Found", "Template not found. It may have been deleted."))
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("Template: **%s**", name),
			Embeds:     []*discordgo.MessageEmbed{b.Formatter.EmbedFromData(tpl.Data)},
			Components: []discordgo.MessageComponent{templateRow(name)},
		},
	})
}

// handleTemplateButton serves embed_template_save, embed_template_use_<name> and
// embed_template_delete_<name>.
func handleTemplateButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 {
		return nil
	}
	ctx := context.Background()
	name := ""
	if len(args) > 1 {
		name = args[1]
	}

	switch args[0] {
	case "save":
		return utils.RespondModal(s, i, templateSaveModalID, "Save Embed Template", templateNameRow())
	case "use":
		tpl, err := b.Stores.Templates.Get(ctx, i.GuildID, name)
		if err != nil {
			return utils.NewBackendError("load template", err)
		}
		if tpl == nil {
			return utils.NewValidationError("template_not_found", "Template Not Found", "Template not found. It may have been deleted.")
		}
		if err := saveDraft(ctx, b, i, tpl.Data); err != nil {
			return err
		}
		return askChannel(s, i, "Template loaded! Choose a channel to send it to.")
	case "delete":
		if err := utils.RequirePermission(i, discordgo.PermissionManageMessages); err != nil {
			return err
		}
		ok, err := b.Stores.Templates.Delete(ctx, i.GuildID, name)
		if err != nil {
			return utils.NewBackendError("delete template", err)
		}
		if !ok {
			return utils.UpdateMessage(s, i, b.Formatter.Error("Template Not Found", "Failed to delete template. It may have already been deleted."))
		}
		return utils.UpdateMessage(s, i, b.Formatter.Success("Template Deleted", fmt.Sprintf("Template **%s** has been deleted.", name)))
	}
	return nil
}

// handleTemplateModal serves embed_template_save_modal.
func handleTemplateModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) < 2 || args[0] != "save" || args[1] != "modal" {
		return nil
	}
	name, err := createTemplate(context.Background(), b, i, utils.ModalValues(i)[fieldTemplate])
	if err != nil {
		return err
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Template Saved", fmt.Sprintf("Embed template \"%s\" has been saved.", name)))
}
