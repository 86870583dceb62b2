package defs

import "github.com/bwmarrin/discordgo"

var WorldClock = &discordgo.ApplicationCommand{
	Name:        "worldclock",
	Description: "Show the current time in a specific timezone or region",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "region",
			Description:  "The timezone or region to show time for",
			Required:     true,
			Autocomplete: true,
		},
	},
}

var WorldClockList = &discordgo.ApplicationCommand{
	Name:        "worldclock-list",
	Description: "List all available timezones and regions",
}

var WorldClockMultiple = &discordgo.ApplicationCommand{
	Name:        "worldclock-multiple",
	Description: "Show the current time in multiple timezones",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "preset",
			Description: "Preset timezone groups",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Major US", Value: "us"},
				{Name: "Global", Value: "global"},
				{Name: "Europe", Value: "europe"},
				{Name: "Asia Pacific", Value: "apac"},
			},
		},
	},
}
