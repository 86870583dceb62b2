package handlers

import (
	"community-bot/bot"
	"community-bot/monitoring"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Register wires every command handler and component route into b and subscribes to the
// gateway events the bot reacts to.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	b.Router.HandleAll(componentRoutes(b))
	addHandlers(b)
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.Logger.Info("logged in",
			zap.String("username", s.State.User.Username),
			zap.Int("guilds", len(r.Guilds)))
		monitoring.TotalDiscordGuilds.Set(float64(len(r.Guilds)))
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		handleInteractionCreate(s, i, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		handleMessageCreate(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) {
		monitoring.TotalDiscordGuilds.Set(float64(len(s.State.Guilds)))
	})
	b.Session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildDelete) {
		b.Logger.Info("removed from guild", zap.String("guild_id", g.ID))
		monitoring.TotalDiscordGuilds.Set(float64(len(s.State.Guilds)))
	})
}
