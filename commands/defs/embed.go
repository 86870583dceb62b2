package defs

import "github.com/bwmarrin/discordgo"

var EmbedCreate = &discordgo.ApplicationCommand{
	Name:                     "embed-create",
	Description:              "Create a custom embed",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "preset",
			Description: "Use a preset template",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Info (Blue)", Value: "info"},
				{Name: "Success (Green)", Value: "success"},
				{Name: "Error (Red)", Value: "error"},
				{Name: "Warning (Yellow)", Value: "warning"},
			},
		},
	},
}

var EmbedSend = &discordgo.ApplicationCommand{
	Name:                     "embed-send",
	Description:              "Send a saved embed or previously created embed",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "Channel to send the embed to",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
		},
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "template",
			Description:  "Use a saved template",
			Required:     false,
			Autocomplete: true,
		},
	},
}

var EmbedEdit = &discordgo.ApplicationCommand{
	Name:                     "embed-edit",
	Description:              "Edit an existing embed message",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "message-id",
			Description: "The ID or link of the message containing the embed to edit",
			Required:    true,
		},
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "The channel containing the message (defaults to current channel)",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
		},
	},
}

var EmbedDelete = &discordgo.ApplicationCommand{
	Name:                     "embed-delete",
	Description:              "Delete an embed message sent by the bot",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "message-id",
			Description: "The ID or link of the message containing the embed to delete",
			Required:    true,
		},
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "The channel containing the message (defaults to current channel)",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
		},
	},
}

var EmbedTemplate = &discordgo.ApplicationCommand{
	Name:                     "embed-template",
	Description:              "Manage embed templates",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "List available embed templates",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "create",
			Description: "Save the embed you are authoring as a template",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Name of the template",
					Required:    true,
					MaxLength:   32,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "delete",
			Description: "Delete an embed template",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "name",
					Description:  "Name of the template",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
	},
}
