package commands

import (
	"community-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// Command categories, used for cooldowns and the help menu.
const (
	CategoryTicket     = "ticket"
	CategoryEmbed      = "embed"
	CategoryModeration = "moderation"
	CategoryUtility    = "utility"
	CategoryFun        = "fun"
	CategoryWorldClock = "worldclock"
)

// Entry is a command definition together with its help category.
type Entry struct {
	Category string
	Command  *discordgo.ApplicationCommand
}

// Categories lists the help categories in display order with their labels.
var Categories = []struct {
	Name  string
	Label string
	Emoji string
}{
	{CategoryTicket, "Tickets", "🎫"},
	{CategoryEmbed, "Embeds", "📝"},
	{CategoryModeration, "Moderation", "🛡️"},
	{CategoryUtility, "Utility", "🔧"},
	{CategoryFun, "Fun", "🎮"},
	{CategoryWorldClock, "World Clock", "🕰️"},
}

var entries = []Entry{
	{CategoryTicket, defs.TicketOpen},
	{CategoryTicket, defs.TicketClose},
	{CategoryTicket, defs.TicketClaim},
	{CategoryTicket, defs.TicketAdd},
	{CategoryTicket, defs.TicketRemove},
	{CategoryTicket, defs.TicketRename},
	{CategoryTicket, defs.TicketTranscript},
	{CategoryTicket, defs.TicketSetup},
	{CategoryTicket, defs.TicketPanel},
	{CategoryTicket, defs.TicketLog},
	{CategoryTicket, defs.TicketCategory},

	{CategoryEmbed, defs.EmbedCreate},
	{CategoryEmbed, defs.EmbedSend},
	{CategoryEmbed, defs.EmbedEdit},
	{CategoryEmbed, defs.EmbedDelete},
	{CategoryEmbed, defs.EmbedTemplate},

	{CategoryModeration, defs.Ban},
	{CategoryModeration, defs.Kick},
	{CategoryModeration, defs.Mute},
	{CategoryModeration, defs.Unmute},
	{CategoryModeration, defs.Warn},
	{CategoryModeration, defs.Purge},
	{CategoryModeration, defs.Nuke},
	{CategoryModeration, defs.NukeAnimation},

	{CategoryUtility, defs.Ping},
	{CategoryUtility, defs.Avatar},
	{CategoryUtility, defs.ServerInfo},
	{CategoryUtility, defs.UserInfo},
	{CategoryUtility, defs.Help},
	{CategoryUtility, defs.BotInfo},
	{CategoryUtility, defs.Database},

	{CategoryFun, defs.Math},
	{CategoryFun, defs.EightBall},
	{CategoryFun, defs.CoinFlip},
	{CategoryFun, defs.Reverse},
	{CategoryFun, defs.Mock},
	{CategoryFun, defs.Say},
	{CategoryFun, defs.Ship},
	{CategoryFun, defs.RPS},
	{CategoryFun, defs.Q},
	{CategoryFun, defs.Joke},
	{CategoryFun, defs.Meme},
	{CategoryFun, defs.ASCII},

	{CategoryWorldClock, defs.WorldClock},
	{CategoryWorldClock, defs.WorldClockList},
	{CategoryWorldClock, defs.WorldClockMultiple},
}

// GenerateCommands returns every slash command the bot registers.
func GenerateCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(entries))
	for _, e := range entries {
		cmds = append(cmds, e.Command)
	}
	return cmds
}

// Entries returns all commands with their categories, in registration order.
func Entries() []Entry {
	return append([]Entry(nil), entries...)
}

// Lookup finds a command entry by name.
func Lookup(name string) (Entry, bool) {
	for _, e := range entries {
		if e.Command.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// CategoryOf returns the category of a command, CategoryUtility when unknown.
func CategoryOf(name string) string {
	if e, ok := Lookup(name); ok {
		return e.Category
	}
	return CategoryUtility
}

// InCategory returns the commands of one category.
func InCategory(category string) []*discordgo.ApplicationCommand {
	var out []*discordgo.ApplicationCommand
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e.Command)
		}
	}
	return out
}
