// Package fun implements the novelty commands.
package fun

import (
	"math/rand"
	"time"

	"community-bot/bot"
	"community-bot/handlers/router"
)

func Commands(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"math":     b.Command(handleMath),
		"8ball":    b.Command(handleEightBall),
		"coinflip": b.Command(handleCoinFlip),
		"reverse":  b.Command(handleReverse),
		"mock":     b.Command(handleMock),
		"say":      b.Command(handleSay),
		"ship":     b.Command(handleShip),
		"rps":      b.Command(handleRPS),
		"q":        b.Command(handleQuestion),
		"joke":     b.Command(handleJoke),
		"meme":     b.Command(handleMeme),
		"ascii":    b.Command(handleASCII),
	}
}

func Routes(b *bot.Bot) []router.Route {
	return []router.Route{
		{Domain: "fun", Action: "rps", Kind: router.Button, Handler: b.Component(handleRPSButton)},
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
