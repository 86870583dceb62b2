package defs

import "github.com/bwmarrin/discordgo"

var Math = &discordgo.ApplicationCommand{
	Name:        "math",
	Description: "Evaluate a math expression",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "expression",
			Description: "The math expression to evaluate",
			Required:    true,
			MaxLength:   200,
		},
	},
}

var EightBall = &discordgo.ApplicationCommand{
	Name:        "8ball",
	Description: "Ask the magic 8-ball a question",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "question",
			Description: "The question to ask",
			Required:    true,
			MaxLength:   256,
		},
	},
}

var CoinFlip = &discordgo.ApplicationCommand{
	Name:        "coinflip",
	Description: "Flip a coin",
}

var Reverse = &discordgo.ApplicationCommand{
	Name:        "reverse",
	Description: "Reverse a text",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "text",
			Description: "The text to reverse",
			Required:    true,
			MaxLength:   1000,
		},
	},
}

var Mock = &discordgo.ApplicationCommand{
	Name:        "mock",
	Description: "Mock a text with alternating cases",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "text",
			Description: "The text to mock",
			Required:    true,
			MaxLength:   1000,
		},
	},
}

var Say = &discordgo.ApplicationCommand{
	Name:                     "say",
	Description:              "Make the bot say something",
	DefaultMemberPermissions: &permManageMessages,
	DMPermission:             &guildOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "message",
			Description: "The message to say",
			Required:    true,
			MaxLength:   2000,
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "ephemeral",
			Description: "Whether to show the command use only to you (default: true)",
			Required:    false,
		},
	},
}

var Ship = &discordgo.ApplicationCommand{
	Name:        "ship",
	Description: "Ship two users together and see their compatibility!",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user1",
			Description: "First user to ship",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user2",
			Description: "Second user to ship",
			Required:    true,
		},
	},
}

var RPS = &discordgo.ApplicationCommand{
	Name:        "rps",
	Description: "Play rock-paper-scissors with the bot",
}

var Q = &discordgo.ApplicationCommand{
	Name:        "q",
	Description: "Ask a question and get a random answer",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "question",
			Description: "The question to ask",
			Required:    true,
			MaxLength:   256,
		},
	},
}

var Joke = &discordgo.ApplicationCommand{
	Name:        "joke",
	Description: "Get a random joke",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "category",
			Description: "Category of joke",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Any", Value: "Any"},
				{Name: "Programming", Value: "Programming"},
				{Name: "Miscellaneous", Value: "Miscellaneous"},
				{Name: "Pun", Value: "Pun"},
				{Name: "Spooky", Value: "Spooky"},
				{Name: "Christmas", Value: "Christmas"},
			},
		},
	},
}

var Meme = &discordgo.ApplicationCommand{
	Name:        "meme",
	Description: "Get a random meme from Reddit",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "subreddit",
			Description: "Subreddit to get the meme from (default: random)",
			Required:    false,
			MaxLength:   23,
		},
	},
}

var ASCII = &discordgo.ApplicationCommand{
	Name:        "ascii",
	Description: "Convert text to ASCII art",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "text",
			Description: "The text to convert to ASCII art",
			Required:    true,
			MaxLength:   20,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "font",
			Description: "The font to use (default: Standard)",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Standard", Value: "standard"},
				{Name: "Shadow", Value: "shadow"},
				{Name: "Small", Value: "small"},
				{Name: "Big", Value: "big"},
				{Name: "3D", Value: "3-d"},
				{Name: "Doom", Value: "doom"},
				{Name: "Graffiti", Value: "graffiti"},
				{Name: "Star Wars", Value: "starwars"},
			},
		},
	},
}
