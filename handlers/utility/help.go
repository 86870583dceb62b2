package utility

import (
	"fmt"
	"strings"

	"community-bot/bot"
	"community-bot/commands"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const helpCategoryID = "utility_help_category"

func handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	if name := strings.TrimPrefix(strings.TrimSpace(opts.String("command", "")), "/"); name != "" {
		entry, ok := commands.Lookup(name)
		if !ok {
			return utils.NewValidationError("unknown_command", "Command Not Found",
				fmt.Sprintf("Command `%s` not found. Use `/help` to see all available commands.", name))
		}
		return utils.RespondEmbed(s, i, false, commandHelp(b.Formatter, entry.Command))
	}

	embed := b.Formatter.Create("", "Help Menu",
		"Use the dropdown menu below to view commands by category, or use `/help command` to get detailed information about a specific command.",
		utils.EmbedOptions{Footer: fmt.Sprintf("The bot has %d commands in total", len(commands.Entries()))})
	return utils.RespondEmbed(s, i, false, embed, categorySelectRow())
}

// commandHelp describes one command with its options or subcommands.
func commandHelp(f *utils.Formatter, cmd *discordgo.ApplicationCommand) *discordgo.MessageEmbed {
	description := cmd.Description
	if description == "" {
		description = "No description available"
	}
	var lines []string
	for _, o := range cmd.Options {
		switch o.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			lines = append(lines, fmt.Sprintf("**/%s %s** - %s", cmd.Name, o.Name, o.Description))
		default:
			required := ""
			if o.Required {
				required = " (Required)"
			}
			lines = append(lines, fmt.Sprintf("**%s** - %s%s", o.Name, o.Description, required))
		}
	}
	var opts utils.EmbedOptions
	if len(lines) > 0 {
		opts.Fields = []*discordgo.MessageEmbedField{{Name: "Options", Value: utils.Truncate(strings.Join(lines, "\n"), 1024)}}
	}
	return f.Create("", "Command: /"+cmd.Name, description, opts)
}

func categorySelectRow() discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, len(commands.Categories))
	for _, c := range commands.Categories {
		options = append(options, discordgo.SelectMenuOption{
			Label:       c.Label,
			Value:       c.Name,
			Description: fmt.Sprintf("View all %s commands", strings.ToLower(c.Label)),
			Emoji:       &discordgo.ComponentEmoji{Name: c.Emoji},
		})
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    helpCategoryID,
			Placeholder: "Select a category",
			Options:     options,
		},
	}}
}

func categoryLabel(name string) string {
	for _, c := range commands.Categories {
		if c.Name == name {
			return c.Label
		}
	}
	return name
}

// categoryHelp lists the commands of one category.
func categoryHelp(f *utils.Formatter, category string) *discordgo.MessageEmbed {
	list := "No commands found in this category."
	if cmds := commands.InCategory(category); len(cmds) > 0 {
		lines := make([]string, len(cmds))
		for n, c := range cmds {
			lines[n] = fmt.Sprintf("**/%s** - %s", c.Name, c.Description)
		}
		list = utils.Truncate(strings.Join(lines, "\n"), 1024)
	}
	label := categoryLabel(category)
	return f.Create("", label+" Commands", fmt.Sprintf("Here are all the commands in the %s category:", label), utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{{Name: "Available Commands", Value: list}},
		Footer: "Use /help command to get more details about a specific command",
	})
}

// handleHelpCategory serves utility_help_category.
func handleHelpCategory(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) == 0 || args[0] != "category" {
		return nil
	}
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return nil
	}
	return utils.UpdateMessage(s, i, categoryHelp(b.Formatter, values[0]), categorySelectRow())
}
