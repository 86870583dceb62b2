// Package ticket answers the ticket commands and the buttons, menus and modals posted in
// ticket channels. State changes go through ticketing.Workflow; this package only talks to
// Discord.
package ticket

import (
	"community-bot/bot"
	"community-bot/handlers/router"
)

// Commands returns the ticket slash command handlers.
func Commands(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"ticket-open":       b.Command(handleOpenCommand),
		"ticket-close":      b.Command(handleCloseCommand),
		"ticket-claim":      b.Command(handleClaim),
		"ticket-add":        b.Command(handleAdd),
		"ticket-remove":     b.Command(handleRemove),
		"ticket-rename":     b.Command(handleRenameCommand),
		"ticket-transcript": b.Command(handleTranscript),
		"ticket-setup":      b.Command(handleSetup),
		"ticket-panel":      b.Command(handlePanel),
		"ticket-log":        b.Command(handleLog),
		"ticket-category":   b.Command(handleCategory),
	}
}

// Routes returns the component and modal routes of the ticket domain.
func Routes(b *bot.Bot) []router.Route {
	return []router.Route{
		{Domain: "ticket", Action: "open", Kind: router.Button, Handler: b.Component(handleOpenButton)},
		{Domain: "ticket", Action: "open", Kind: router.SelectMenu, Handler: b.Component(handleOpenSelect)},
		{Domain: "ticket", Action: "claim", Kind: router.Button, Handler: b.Component(handleClaimButton)},
		{Domain: "ticket", Action: "close", Kind: router.Button, Handler: b.Component(handleCloseButton)},
		{Domain: "ticket", Action: "transcript", Kind: router.Button, Handler: b.Component(handleTranscriptButton)},
		{Domain: "ticket", Action: "delete", Kind: router.Button, Handler: b.Component(handleDelete)},
		{Domain: "ticket", Action: "rename", Kind: router.Modal, Handler: b.Component(handleRenameModal)},
	}
}
