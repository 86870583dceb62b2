package ticket

import (
	"context"
	"fmt"
	"strings"

	"community-bot/bot"
	"community-bot/ticketing"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const defaultLogViewLimit = 10

func handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.RequirePermission(i, discordgo.PermissionAdministrator); err != nil {
		return err
	}
	_, opts := utils.CommandOptions(i)
	req := ticketing.SetupRequest{GuildID: i.GuildID}
	var fields []*discordgo.MessageEmbedField

	if logs := opts.Channel(i, "logs"); logs != nil {
		req.LogsChannel = logs.ID
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Logs Channel", Value: "<#" + logs.ID + ">", Inline: true})
	}
	if category := opts.Channel(i, "category"); category != nil {
		if category.Type != discordgo.ChannelTypeGuildCategory {
			return utils.NewValidationError("invalid_category", "Invalid Category", "The channel you selected is not a category. Please select a valid category.")
		}
		req.CategoryID = category.ID
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Tickets Category", Value: category.Name, Inline: true})
	}
	if role := opts.ID("staff-role"); role != "" {
		req.StaffRoleIDs = []string{role}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Staff Role", Value: "<@&" + role + ">", Inline: true})
	}

	if _, err := b.Tickets.Setup(context.Background(), req); err != nil {
		return err
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Ticket System Setup",
		"The ticket system has been set up successfully. Use `/ticket-panel` to create a ticket creation panel.",
		utils.EmbedOptions{Fields: fields}))
}

func handlePanel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.RequirePermission(i, discordgo.PermissionManageChannels); err != nil {
		return err
	}
	ctx := context.Background()
	_, opts := utils.CommandOptions(i)
	channelID := opts.ID("channel")
	title := opts.String("title", "Support Tickets")
	description := opts.String("description", "To create a ticket, select the appropriate option below or click the button.")

	settings, err := b.Tickets.RequireSettings(ctx, i.GuildID)
	if err != nil {
		return err
	}
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{panelEmbed(b.Formatter, title, description, settings.TicketTypes)},
		Components: panelComponents(settings.TicketTypes),
	})
	if err != nil {
		return utils.NewCollaboratorError("Failed to Create Panel", "post the ticket panel", err)
	}
	if err := b.Tickets.SetPanel(ctx, i.GuildID, channelID, msg.ID); err != nil {
		return err
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Ticket Panel Created", fmt.Sprintf("The ticket panel has been created in <#%s>.", channelID)))
}

func handleLog(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.RequirePermission(i, discordgo.PermissionManageChannels); err != nil {
		return err
	}
	ctx := context.Background()
	sub, opts := utils.CommandOptions(i)

	switch sub {
	case "set":
		channelID := opts.ID("channel")
		if err := b.Tickets.SetLogsChannel(ctx, i.GuildID, channelID); err != nil {
			return err
		}
		return utils.RespondEmbed(s, i, true, b.Formatter.Success("Logs Channel Set", fmt.Sprintf("Ticket logs will now be sent to <#%s>.", channelID)))
	case "view":
		settings, err := b.Tickets.RequireSettings(ctx, i.GuildID)
		if err != nil {
			return err
		}
		if settings.LogsChannel == "" {
			return utils.NewValidationError("no_logs_channel", "No Logs Channel", "No ticket logs channel has been set.")
		}
		entries, err := b.Tickets.Logs(ctx, i.GuildID, int(opts.Int("limit", defaultLogViewLimit)))
		if err != nil {
			return err
		}
		recent := "No ticket activity has been recorded yet."
		if len(entries) > 0 {
			lines := make([]string, 0, len(entries))
			for _, e := range entries {
				lines = append(lines, logEntryLine(e))
			}
			recent = utils.Truncate(strings.Join(lines, "\n"), 1024)
		}
		return utils.RespondEmbed(s, i, true, b.Formatter.Success("Ticket Logs Channel",
			fmt.Sprintf("The current ticket logs channel is %s.", channelMention(settings.LogsChannel)),
			utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{{Name: "Recent Activity", Value: recent}}}))
	}
	return nil
}

func handleCategory(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.RequirePermission(i, discordgo.PermissionManageChannels); err != nil {
		return err
	}
	_, opts := utils.CommandOptions(i)
	category := opts.Channel(i, "category")
	if category == nil || category.Type != discordgo.ChannelTypeGuildCategory {
		return utils.NewValidationError("invalid_category", "Invalid Channel", "Please select a category channel.")
	}
	if err := b.Tickets.SetCategory(context.Background(), i.GuildID, category.ID, utils.InvokerID(i)); err != nil {
		return err
	}
	return utils.RespondEmbed(s, i, true, b.Formatter.Success("Category Updated", fmt.Sprintf("Ticket category has been set to %s.", category.Name)))
}

// channelMention renders a configured channel, which may be a snowflake or a plain name.
func channelMention(idOrName string) string {
	for _, r := range idOrName {
		if r < '0' || r > '9' {
			return "#" + strings.TrimPrefix(idOrName, "#")
		}
	}
	return "<#" + idOrName + ">"
}
