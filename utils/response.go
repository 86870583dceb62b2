package utils

import (
	"github.com/bwmarrin/discordgo"
)

// RespondEmbed replies to an interaction with embeds and optional components.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool, embed *discordgo.MessageEmbed, components ...discordgo.MessageComponent) error {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondText sends a plain text reply.
func RespondText(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: message}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// UpdateMessage replaces the message a component belongs to.
func UpdateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components ...discordgo.MessageComponent) error {
	data := &discordgo.InteractionResponseData{Components: components}
	if data.Components == nil {
		data.Components = []discordgo.MessageComponent{}
	}
	if embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{embed}
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// RespondModal opens a modal dialog.
func RespondModal(s *discordgo.Session, i *discordgo.InteractionCreate, customID, title string, rows ...discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: rows,
		},
	})
}

// DeferResponse defers an interaction response, optionally making it ephemeral.
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		response.Data = &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		}
	}
	return s.InteractionRespond(i.Interaction, response)
}

// EditEmbed replaces the deferred response with an embed.
func EditEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components ...discordgo.MessageComponent) error {
	embeds := []*discordgo.MessageEmbed{embed}
	edit := &discordgo.WebhookEdit{Embeds: &embeds}
	if components != nil {
		edit.Components = &components
	}
	_, err := s.InteractionResponseEdit(i.Interaction, edit)
	return err
}

// EditContent replaces the deferred response with plain content.
func EditContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

// RespondError reports a failure to the user. It answers the interaction when it has not been
// answered yet and edits the deferred reply otherwise.
func RespondError(s *discordgo.Session, i *discordgo.InteractionCreate, f *Formatter, deferred bool, title, message string) error {
	embed := f.Error(title, message)
	if deferred {
		return EditEmbed(s, i, embed)
	}
	return RespondEmbed(s, i, true, embed)
}

// RespondGenericError sends the generic failure message, for errors whose details stay in the logs.
func RespondGenericError(s *discordgo.Session, i *discordgo.InteractionCreate, f *Formatter, deferred bool) error {
	return RespondError(s, i, f, deferred, "Error", GenericErrorMessage)
}

// FollowUpError posts an ephemeral follow-up, used once the original response is already final.
func FollowUpError(s *discordgo.Session, i *discordgo.InteractionCreate, f *Formatter, title, message string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{f.Error(title, message)},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	return err
}
