package embed

import (
	"regexp"
	"strings"
	"time"

	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Text input ids of the create and edit modals.
const (
	fieldTitle       = "embedTitle"
	fieldDescription = "embedDescription"
	fieldColor       = "embedColor"
	fieldFooter      = "embedFooter"
	fieldImage       = "embedImage"
	fieldTemplate    = "templateName"
)

var (
	imageURLPattern     = regexp.MustCompile(`^(https?://)(www\.)?([a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)+)(/\S*)?$`)
	templateNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 .-]{0,31}$`)
)

// parseForm validates submitted modal values and builds the embed payload. An empty colour
// falls back to defaultColor.
func parseForm(values map[string]string, defaultColor string, now time.Time) (model.EmbedData, error) {
	title := strings.TrimSpace(values[fieldTitle])
	description := strings.TrimSpace(values[fieldDescription])
	color := strings.TrimSpace(values[fieldColor])
	footer := strings.TrimSpace(values[fieldFooter])
	image := strings.TrimSpace(values[fieldImage])

	if title == "" && description == "" {
		return model.EmbedData{}, utils.NewValidationError("missing_content", "Missing Content",
			"You must provide at least a title or description for the embed.")
	}
	if color == "" {
		color = defaultColor
	} else if !utils.IsHexColor(color) {
		return model.EmbedData{}, utils.NewValidationError("invalid_color", "Invalid Color",
			"Please provide a valid hex color code (e.g., #5865F2).")
	}
	if image != "" && !imageURLPattern.MatchString(image) {
		return model.EmbedData{}, utils.NewValidationError("invalid_image", "Invalid Image URL",
			"Please provide a valid image URL or leave it blank.")
	}

	d := model.EmbedData{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
	if footer != "" {
		d.Footer = &model.EmbedFooter{Text: footer}
	}
	if image != "" {
		d.Image = &model.EmbedImage{URL: image}
	}
	return d, nil
}

// validTemplateName keeps names free of underscores so they fit in component ids.
func validTemplateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !templateNamePattern.MatchString(name) {
		return "", utils.NewValidationError("invalid_template_name", "Invalid Template Name",
			"Template names may contain letters, numbers, spaces, dots and dashes, up to 32 characters.")
	}
	return name, nil
}

// formRows builds the five text inputs of the create and edit modals, prefilled from d.
func formRows(d model.EmbedData, defaultColor string) []discordgo.MessageComponent {
	color := d.Color
	if color == "" {
		color = defaultColor
	}
	footer, image := "", ""
	if d.Footer != nil {
		footer = d.Footer.Text
	}
	if d.Image != nil {
		image = d.Image.URL
	}
	return []discordgo.MessageComponent{
		utils.TextInputRow(discordgo.TextInput{
			CustomID: fieldTitle, Label: "Embed Title", Style: discordgo.TextInputShort,
			Placeholder: "Enter a title for your embed", Value: d.Title, MaxLength: 256,
		}),
		utils.TextInputRow(discordgo.TextInput{
			CustomID: fieldDescription, Label: "Embed Description", Style: discordgo.TextInputParagraph,
			Placeholder: "Enter a description for your embed", Value: d.Description, MaxLength: 4000,
		}),
		utils.TextInputRow(discordgo.TextInput{
			CustomID: fieldColor, Label: "Embed Color (Hex code e.g. #5865F2)", Style: discordgo.TextInputShort,
			Placeholder: "#5865F2", Value: color, MaxLength: 7,
		}),
		utils.TextInputRow(discordgo.TextInput{
			CustomID: fieldFooter, Label: "Embed Footer", Style: discordgo.TextInputShort,
			Placeholder: "Enter a footer for your embed", Value: footer, MaxLength: 2048,
		}),
		utils.TextInputRow(discordgo.TextInput{
			CustomID: fieldImage, Label: "Embed Image URL (optional)", Style: discordgo.TextInputShort,
			Placeholder: "Enter an image URL for your embed", Value: image, MaxLength: 1024,
		}),
	}
}

func templateNameRow() discordgo.ActionsRow {
	return utils.TextInputRow(discordgo.TextInput{
		CustomID:    fieldTemplate,
		Label:       "Template Name",
		Style:       discordgo.TextInputShort,
		Placeholder: "Enter a name for this template",
		Required:    true,
		MaxLength:   32,
	})
}

func previewRow() discordgo.ActionsRow {
	return utils.ButtonRow(
		utils.Button{CustomID: "embed_send", Label: "Send Embed", Style: discordgo.PrimaryButton},
		utils.Button{CustomID: "embed_template_save", Label: "Save as Template", Style: discordgo.SuccessButton},
		utils.Button{CustomID: "embed_edit", Label: "Edit", Style: discordgo.SecondaryButton},
	)
}

func templateRow(name string) discordgo.ActionsRow {
	return utils.ButtonRow(
		utils.Button{CustomID: "embed_template_use_" + name, Label: "Use Template", Style: discordgo.PrimaryButton},
		utils.Button{CustomID: "embed_template_delete_" + name, Label: "Delete Template", Style: discordgo.DangerButton},
	)
}

func channelSelectRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:     discordgo.ChannelSelectMenu,
			CustomID:     "embed_send_channel",
			Placeholder:  "Select a channel to send the embed to",
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
		},
	}}
}

// templateSelectRow lists at most 25 templates, the select menu limit.
func templateSelectRow(templates []*model.EmbedTemplate) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, len(templates))
	for _, t := range templates {
		if len(options) == 25 {
			break
		}
		options = append(options, discordgo.SelectMenuOption{Label: t.Name, Value: t.Name})
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    "embed_template_select",
			Placeholder: "Select a template to view or manage",
			Options:     options,
		},
	}}
}
