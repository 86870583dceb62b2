package handlers

import (
	"context"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/commands"
	"community-bot/handlers/worldclock"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const maxChoices = 25

func handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	data := i.ApplicationCommandData()
	focused := utils.Focused(data.Options)
	if focused == nil {
		return
	}
	query := focused.StringValue()

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch {
	case data.Name == "worldclock" && focused.Name == "region":
		choices = worldclock.Suggest(query)
	case data.Name == "help" && focused.Name == "command":
		choices = commandChoices(query)
	case (data.Name == "embed-send" && focused.Name == "template") ||
		(data.Name == "embed-template" && focused.Name == "name"):
		choices = templateChoices(b, i.GuildID, query)
	}
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		b.Logger.Debug("failed to answer autocomplete", zap.String("command", data.Name), zap.Error(err))
	}
}

// commandChoices matches registered command names against the typed prefix or substring.
func commandChoices(query string) []*discordgo.ApplicationCommandOptionChoice {
	var names []string
	for _, e := range commands.Entries() {
		names = append(names, e.Command.Name)
	}
	return filterChoices(names, query)
}

func templateChoices(b *bot.Bot, guildID, query string) []*discordgo.ApplicationCommandOptionChoice {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	templates, err := b.Stores.Templates.List(ctx, guildID)
	if err != nil {
		b.Logger.Warn("failed to list templates for autocomplete", zap.String("guild_id", guildID), zap.Error(err))
		return nil
	}
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	return filterChoices(names, query)
}

// filterChoices keeps the names containing query, case-insensitively, capped at the Discord
// limit of 25.
func filterChoices(names []string, query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, n := range names {
		if !strings.Contains(strings.ToLower(n), query) {
			continue
		}
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
		if len(out) == maxChoices {
			break
		}
	}
	return out
}
