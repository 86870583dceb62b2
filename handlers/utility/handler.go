// Package utility implements the informational commands: latency, avatars, server and user
// details, help, bot status and record store status.
package utility

import (
	"community-bot/bot"
	"community-bot/handlers/router"
)

func Commands(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"ping":       b.Command(handlePing),
		"avatar":     b.Command(handleAvatar),
		"serverinfo": b.Command(handleServerInfo),
		"userinfo":   b.Command(handleUserInfo),
		"help":       b.Command(handleHelp),
		"botinfo":    b.Command(handleBotInfo),
		"database":   b.Command(handleDatabase),
	}
}

func Routes(b *bot.Bot) []router.Route {
	return []router.Route{
		{Domain: "utility", Action: "help", Kind: router.SelectMenu, Handler: b.Component(handleHelpCategory)},
	}
}
