package defs

import "github.com/bwmarrin/discordgo"

var Ping = &discordgo.ApplicationCommand{
	Name:        "ping",
	Description: "Check the bot's latency",
}

var Avatar = &discordgo.ApplicationCommand{
	Name:        "avatar",
	Description: "Display the avatar of a user",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user whose avatar to show (defaults to yourself)",
			Required:    false,
		},
	},
}

var ServerInfo = &discordgo.ApplicationCommand{
	Name:         "serverinfo",
	Description:  "Display information about the current server",
	DMPermission: &guildOnly,
}

var UserInfo = &discordgo.ApplicationCommand{
	Name:         "userinfo",
	Description:  "Display information about a user",
	DMPermission: &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to display info about (defaults to yourself)",
			Required:    false,
		},
	},
}

var Help = &discordgo.ApplicationCommand{
	Name:        "help",
	Description: "Display a list of available commands or info about a specific command",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "command",
			Description:  "Get info about a specific command",
			Required:     false,
			Autocomplete: true,
		},
	},
}

var BotInfo = &discordgo.ApplicationCommand{
	Name:        "botinfo",
	Description: "Display bot and system status information",
}

var Database = &discordgo.ApplicationCommand{
	Name:                     "database",
	Description:              "Database management commands (Admin only)",
	DefaultMemberPermissions: &permAdministrator,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "status",
			Description: "Check database connection status",
		},
	},
}
