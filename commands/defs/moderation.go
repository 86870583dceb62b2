package defs

import "github.com/bwmarrin/discordgo"

var Ban = &discordgo.ApplicationCommand{
	Name:                     "ban",
	Description:              "Ban a user from the server",
	DefaultMemberPermissions: &permBanMembers,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to ban",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the ban",
			Required:    false,
			MaxLength:   512,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "days",
			Description: "Number of days of messages to delete (0-7)",
			Required:    false,
			MinValue:    &minZero,
			MaxValue:    7,
		},
	},
}

var Kick = &discordgo.ApplicationCommand{
	Name:                     "kick",
	Description:              "Kick a user from the server",
	DefaultMemberPermissions: &permKickMembers,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to kick",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the kick",
			Required:    false,
			MaxLength:   512,
		},
	},
}

var Mute = &discordgo.ApplicationCommand{
	Name:                     "mute",
	Description:              "Timeout (mute) a user in the server",
	DefaultMemberPermissions: &permModerate,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to timeout",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Duration of the timeout (e.g. 1h, 1d, max 28d)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the timeout",
			Required:    false,
			MaxLength:   512,
		},
	},
}

var Unmute = &discordgo.ApplicationCommand{
	Name:                     "unmute",
	Description:              "Remove timeout (unmute) from a user",
	DefaultMemberPermissions: &permModerate,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to remove timeout from",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for removing the timeout",
			Required:    false,
			MaxLength:   512,
		},
	},
}

func warnUserOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

var Warn = &discordgo.ApplicationCommand{
	Name:                     "warn",
	Description:              "Manage warnings for users",
	DefaultMemberPermissions: &permModerate,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "add",
			Description: "Warn a user",
			Options: []*discordgo.ApplicationCommandOption{
				warnUserOption("The user to warn"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for the warning",
					Required:    true,
					MaxLength:   512,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "List warnings for a user",
			Options:     []*discordgo.ApplicationCommandOption{warnUserOption("The user to check warnings for")},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "remove",
			Description: "Remove a warning from a user",
			Options: []*discordgo.ApplicationCommandOption{
				warnUserOption("The user to remove a warning from"),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "warning-id",
					Description: "The number of the warning to remove, as shown by /warn list",
					Required:    true,
					MinValue:    &minOne,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "clear",
			Description: "Clear all warnings from a user",
			Options:     []*discordgo.ApplicationCommandOption{warnUserOption("The user to clear warnings from")},
		},
	},
}

var Purge = &discordgo.ApplicationCommand{
	Name:                     "purge",
	Description:              "Delete multiple messages from a channel",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "Number of messages to delete (1-100)",
			Required:    true,
			MinValue:    &minOne,
			MaxValue:    100,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Only delete messages from this user",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "contains",
			Description: "Only delete messages containing this text",
			Required:    false,
		},
	},
}

var Nuke = &discordgo.ApplicationCommand{
	Name:                     "nuke",
	Description:              "Delete all messages in a channel (creates a clone and deletes the original)",
	DefaultMemberPermissions: &permManageChannels,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "The channel to nuke (defaults to current channel)",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for nuking the channel",
			Required:    false,
			MaxLength:   512,
		},
	},
}

var NukeAnimation = &discordgo.ApplicationCommand{
	Name:                     "nukeanimation",
	Description:              "Display a nuke animation in the channel (does not delete messages)",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "type",
			Description: "The type of animation to display",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Nuclear Explosion", Value: "nuclear"},
				{Name: "Boom Animation", Value: "boom"},
				{Name: "Thanos Snap", Value: "thanos"},
			},
		},
	},
}
