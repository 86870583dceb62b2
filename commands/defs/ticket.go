package defs

import "github.com/bwmarrin/discordgo"

var (
	permAdministrator  int64 = discordgo.PermissionAdministrator
	permManageChannels int64 = discordgo.PermissionManageChannels
	permManageMessages int64 = discordgo.PermissionManageMessages
	permBanMembers     int64 = discordgo.PermissionBanMembers
	permKickMembers    int64 = discordgo.PermissionKickMembers
	permModerate       int64 = discordgo.PermissionModerateMembers

	guildOnly = false
)

var TicketOpen = &discordgo.ApplicationCommand{
	Name:         "ticket-open",
	Description:  "Open a new ticket",
	DMPermission: &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "type",
			Description: "Type of ticket",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "General Support", Value: "General Support"},
				{Name: "Report Issue", Value: "Report Issue"},
				{Name: "Feature Request", Value: "Feature Request"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for opening a ticket",
			Required:    false,
			MaxLength:   1000,
		},
	},
}

var TicketClose = &discordgo.ApplicationCommand{
	Name:         "ticket-close",
	Description:  "Close a ticket",
	DMPermission: &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for closing the ticket",
			Required:    false,
			MaxLength:   1000,
		},
	},
}

var TicketClaim = &discordgo.ApplicationCommand{
	Name:         "ticket-claim",
	Description:  "Claim a ticket to show you are handling it",
	DMPermission: &guildOnly,
}

var TicketAdd = &discordgo.ApplicationCommand{
	Name:         "ticket-add",
	Description:  "Add a user to the ticket",
	DMPermission: &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to add to the ticket",
			Required:    true,
		},
	},
}

var TicketRemove = &discordgo.ApplicationCommand{
	Name:         "ticket-remove",
	Description:  "Remove a user from the ticket",
	DMPermission: &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to remove from the ticket",
			Required:    true,
		},
	},
}

var TicketRename = &discordgo.ApplicationCommand{
	Name:         "ticket-rename",
	Description:  "Rename a ticket channel",
	DMPermission: &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name",
			Description: "New name for the ticket (without ticket- prefix)",
			Required:    false,
			MaxLength:   100,
		},
	},
}

var TicketTranscript = &discordgo.ApplicationCommand{
	Name:         "ticket-transcript",
	Description:  "Export the messages of this ticket as a text file",
	DMPermission: &guildOnly,
}

var TicketSetup = &discordgo.ApplicationCommand{
	Name:                     "ticket-setup",
	Description:              "Setup the ticket system",
	DefaultMemberPermissions: &permAdministrator,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "logs",
			Description:  "Channel where ticket logs will be sent",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "category",
			Description:  "Category where tickets will be created",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "staff-role",
			Description: "Role that can access tickets",
			Required:    false,
		},
	},
}

var TicketPanel = &discordgo.ApplicationCommand{
	Name:                     "ticket-panel",
	Description:              "Create a ticket panel for users to open tickets",
	DefaultMemberPermissions: &permManageChannels,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "Channel to send the ticket panel to",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "title",
			Description: "Title for the ticket panel",
			Required:    false,
			MaxLength:   256,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "description",
			Description: "Description for the ticket panel",
			Required:    false,
			MaxLength:   4000,
		},
	},
}

var TicketLog = &discordgo.ApplicationCommand{
	Name:                     "ticket-log",
	Description:              "Set or view the ticket log channel",
	DefaultMemberPermissions: &permAdministrator,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set",
			Description: "Set the channel for ticket logs",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel where ticket logs will be sent",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "view",
			Description: "View the ticket log channel and recent ticket events",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "Number of recent events to show (default 10)",
					Required:    false,
					MinValue:    &minOne,
					MaxValue:    25,
				},
			},
		},
	},
}

var TicketCategory = &discordgo.ApplicationCommand{
	Name:                     "ticket-category",
	Description:              "Set the category for ticket channels",
	DefaultMemberPermissions: &permAdministrator,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "category",
			Description:  "The category where tickets will be created",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
		},
	},
}

var minZero, minOne float64 = 0, 1
