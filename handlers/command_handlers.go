package handlers

import (
	"community-bot/bot"
	"community-bot/handlers/embed"
	"community-bot/handlers/fun"
	"community-bot/handlers/moderation"
	"community-bot/handlers/router"
	"community-bot/handlers/ticket"
	"community-bot/handlers/utility"
	"community-bot/handlers/worldclock"
)

func commandHandlers(b *bot.Bot) map[string]bot.CommandHandler {
	return mergeCommands(
		ticket.Commands(b),
		embed.Commands(b),
		moderation.Commands(b),
		utility.Commands(b),
		fun.Commands(b),
		worldclock.Commands(b),
	)
}

func componentRoutes(b *bot.Bot) []router.Route {
	var routes []router.Route
	for _, r := range [][]router.Route{
		ticket.Routes(b),
		embed.Routes(b),
		moderation.Routes(b),
		utility.Routes(b),
		fun.Routes(b),
		worldclock.Routes(b),
	} {
		routes = append(routes, r...)
	}
	return routes
}

// mergeCommands flattens the per-feature maps. A name registered twice keeps the first handler.
func mergeCommands(sets ...map[string]bot.CommandHandler) map[string]bot.CommandHandler {
	out := make(map[string]bot.CommandHandler)
	for _, set := range sets {
		for name, h := range set {
			if _, dup := out[name]; dup {
				continue
			}
			out[name] = h
		}
	}
	return out
}
