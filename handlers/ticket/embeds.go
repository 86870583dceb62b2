package ticket

import (
	"fmt"
	"strings"

	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	memberAllow = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory
	botAllow    = memberAllow | discordgo.PermissionManageChannels
)

// channelOverwrites hides the channel from @everyone and opens it to the creator, the bot and
// the staff roles.
func channelOverwrites(guildID, userID, botID string, staffRoleIDs []string) []*discordgo.PermissionOverwrite {
	out := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: userID, Type: discordgo.PermissionOverwriteTypeMember, Allow: memberAllow},
	}
	if botID != "" {
		out = append(out, &discordgo.PermissionOverwrite{ID: botID, Type: discordgo.PermissionOverwriteTypeMember, Allow: botAllow})
	}
	for _, r := range staffRoleIDs {
		out = append(out, &discordgo.PermissionOverwrite{ID: r, Type: discordgo.PermissionOverwriteTypeRole, Allow: memberAllow})
	}
	return out
}

// findCategory resolves the configured ticket category by id or by name.
func findCategory(channels []*discordgo.Channel, idOrName string) *discordgo.Channel {
	if idOrName == "" {
		return nil
	}
	for _, c := range channels {
		if c.ID == idOrName && c.Type == discordgo.ChannelTypeGuildCategory {
			return c
		}
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory && strings.EqualFold(c.Name, idOrName) {
			return c
		}
	}
	return nil
}

func welcomeEmbed(f *utils.Formatter, t *model.Ticket, welcome, reason string) *discordgo.MessageEmbed {
	return f.Create("", t.Type+" Ticket", welcome, utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Created By", Value: "<@" + t.UserID + ">", Inline: true},
			{Name: "Ticket Type", Value: t.Type, Inline: true},
			{Name: "Reason", Value: reason},
		},
		Footer: "Ticket ID: " + t.ID,
	})
}

func welcomeContent(userID string, staffRoleIDs []string) string {
	if len(staffRoleIDs) == 0 {
		return "<@" + userID + ">"
	}
	return fmt.Sprintf("<@%s> <@&%s>", userID, staffRoleIDs[0])
}

func controlRow() discordgo.ActionsRow {
	return utils.ButtonRow(
		utils.Button{CustomID: "ticket_claim", Label: "Claim Ticket", Emoji: "🙋", Style: discordgo.PrimaryButton},
		utils.Button{CustomID: "ticket_close", Label: "Close Ticket", Emoji: "🔒", Style: discordgo.DangerButton},
	)
}

func closeConfirmPrompt(f *utils.Formatter, token string) (*discordgo.MessageEmbed, discordgo.ActionsRow) {
	embed := f.Warning("Confirm Ticket Closure", "Are you sure you want to close this ticket?",
		utils.EmbedOptions{Footer: "The ticket will be closed and archived."})
	row := utils.ButtonRow(
		utils.Button{CustomID: "ticket_close_confirm_" + token, Label: "Close Ticket", Style: discordgo.DangerButton},
		utils.Button{CustomID: "ticket_close_cancel_" + token, Label: "Cancel", Style: discordgo.SecondaryButton},
	)
	return embed, row
}

func closingEmbed(f *utils.Formatter, closedBy, reason string) *discordgo.MessageEmbed {
	return f.Warning("Ticket Closed", "This ticket has been closed.", utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Closed By", Value: "<@" + closedBy + ">", Inline: true},
			{Name: "Reason", Value: reason, Inline: true},
		},
	})
}

func closedRow() discordgo.ActionsRow {
	return utils.ButtonRow(
		utils.Button{CustomID: "ticket_transcript", Label: "Save Transcript", Emoji: "📝", Style: discordgo.PrimaryButton},
		utils.Button{CustomID: "ticket_delete", Label: "Delete Ticket", Emoji: "🗑️", Style: discordgo.DangerButton},
	)
}

func panelEmbed(f *utils.Formatter, title, description string, types []model.TicketType) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(types))
	for _, t := range types {
		lines = append(lines, fmt.Sprintf("%s **%s**", t.Emoji, t.Label))
	}
	return f.Create("", title, description, utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{{Name: "Available Support", Value: strings.Join(lines, "\n")}},
		Footer: "Click the button below or use the dropdown to open a ticket",
	})
}

func panelComponents(types []model.TicketType) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(types))
	for _, t := range types {
		opt := discordgo.SelectMenuOption{
			Label:       t.Label,
			Value:       t.Label,
			Description: "Create a " + t.Label + " ticket",
		}
		if t.Emoji != "" {
			opt.Emoji = &discordgo.ComponentEmoji{Name: t.Emoji}
		}
		options = append(options, opt)
	}
	return []discordgo.MessageComponent{
		utils.ButtonRow(utils.Button{CustomID: "ticket_open_default", Label: "Create Ticket", Emoji: "🎫", Style: discordgo.PrimaryButton}),
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    "ticket_open_select",
				Placeholder: "Select ticket type...",
				Options:     options,
			},
		}},
	}
}

func renameModalRow() discordgo.ActionsRow {
	return utils.TextInputRow(discordgo.TextInput{
		CustomID:    "ticketName",
		Label:       "New ticket name (without ticket- prefix)",
		Style:       discordgo.TextInputShort,
		Placeholder: "Enter new name",
		Required:    true,
		MaxLength:   32,
	})
}

// logEntryLine renders one ticket log entry for /ticket-log view.
func logEntryLine(e *model.TicketLogEntry) string {
	line := fmt.Sprintf("<t:%d:R> **%s** by <@%s>", e.CreatedAt.Unix(), e.Action, e.ActorID)
	if e.ChannelID != "" {
		line += " in <#" + e.ChannelID + ">"
	}
	if e.Detail != "" {
		line += ": " + e.Detail
	}
	return line
}
