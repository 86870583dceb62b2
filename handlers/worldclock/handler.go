// Package worldclock shows the current time in named time zones.
package worldclock

import (
	"fmt"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/handlers/router"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const maxSelected = 10

func Commands(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"worldclock":          b.Command(handleRegion),
		"worldclock-list":     b.Command(handleList),
		"worldclock-multiple": b.Command(handleMultiple),
	}
}

func Routes(b *bot.Bot) []router.Route {
	return []router.Route{
		{Domain: "worldclock", Action: "select", Kind: router.SelectMenu, Handler: b.Component(handleSelect)},
	}
}

func handleRegion(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	region := opts.String("region", "")
	zone, loc, err := Resolve(region)
	if err != nil {
		return utils.NewValidationError("invalid_timezone", "Invalid Timezone",
			fmt.Sprintf("Invalid timezone \"%s\". Use `/worldclock-list` to see available timezones.", region))
	}
	label := zone.Code
	if zone.Location != zone.Code {
		label = fmt.Sprintf("%s (%s)", zone.Code, zone.Location)
	}
	embed := b.Formatter.Create("", "🕰️ World Clock: "+label,
		fmt.Sprintf("Current time: **%s**", FormatTime(time.Now(), loc)), utils.EmbedOptions{})
	return utils.RespondEmbed(s, i, false, embed)
}

func listEmbed(f *utils.Formatter) *discordgo.MessageEmbed {
	var fields []*discordgo.MessageEmbedField
	for start := 0; start < len(CommonZones); start += 5 {
		end := min(start+5, len(CommonZones))
		lines := make([]string, 0, end-start)
		for _, z := range CommonZones[start:end] {
			lines = append(lines, fmt.Sprintf("`%s` - %s", z.Code, z.Location))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Timezones (%d)", start/5+1),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Full List",
		Value: "You can also use any valid IANA timezone identifier, such as `America/New_York` or `Europe/London`.",
	})
	return f.Create("", "🌐 Supported Timezones", "Here are some common timezones you can use:", utils.EmbedOptions{Fields: fields})
}

func handleList(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	return utils.RespondEmbed(s, i, false, listEmbed(b.Formatter))
}

// clockEmbed shows every zone as an inline field. Zones that fail to load are marked rather
// than dropped.
func clockEmbed(f *utils.Formatter, zones []Zone, now time.Time) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(zones))
	for _, z := range zones {
		value := "Invalid timezone"
		if loc, err := time.LoadLocation(z.Location); err == nil {
			value = FormatTime(now, loc)
		}
		name := z.Label
		if name == "" {
			name = z.Code
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true})
	}
	return f.Create("", "🌎 World Clock", "", utils.EmbedOptions{Fields: fields})
}

func selectRow() discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, len(CommonZones))
	for _, z := range CommonZones {
		if len(options) == 25 {
			break
		}
		options = append(options, discordgo.SelectMenuOption{Label: z.Code, Value: z.Code, Description: z.Location})
	}
	minValues := 1
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    "worldclock_select",
			Placeholder: "Select timezones to display",
			MinValues:   &minValues,
			MaxValues:   min(maxSelected, len(options)),
			Options:     options,
		},
	}}
}

func handleMultiple(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	if zones, ok := Presets[opts.String("preset", "")]; ok {
		return utils.RespondEmbed(s, i, false, clockEmbed(b.Formatter, zones, time.Now()))
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("Select up to %d timezones to display:", maxSelected),
			Components: []discordgo.MessageComponent{selectRow()},
		},
	})
}

// selectedZones maps selected codes back to zones, ignoring unknown values.
func selectedZones(codes []string) []Zone {
	var zones []Zone
	for _, c := range codes {
		for _, z := range CommonZones {
			if z.Code == c {
				zones = append(zones, Zone{Code: z.Code, Label: z.Code, Location: z.Location})
				break
			}
		}
	}
	return zones
}

// handleSelect serves worldclock_select. Only the user who ran the command may pick.
func handleSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) > 0 {
		return nil
	}
	if i.Message != nil && i.Message.Interaction != nil && i.Message.Interaction.User != nil &&
		i.Message.Interaction.User.ID != utils.InvokerID(i) {
		return utils.NewValidationError("not_owner", "Not Your Menu", "Run `/worldclock-multiple` to pick your own timezones.")
	}
	zones := selectedZones(i.MessageComponentData().Values)
	if len(zones) == 0 {
		return utils.NewValidationError("invalid_timezone", "Invalid Timezone", "Please select at least one timezone.")
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "",
			Embeds:     []*discordgo.MessageEmbed{clockEmbed(b.Formatter, zones, time.Now())},
			Components: []discordgo.MessageComponent{},
		},
	})
}
