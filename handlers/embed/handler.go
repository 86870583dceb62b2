// Package embed implements embed authoring: a modal builds the embed, the draft lives in the
// session store until it is sent or saved as a template, and sent embeds are tracked so they
// can be edited later.
package embed

import (
	"context"
	"time"

	"community-bot/bot"
	"community-bot/handlers/router"
	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Commands(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"embed-create":   b.Command(handleCreate),
		"embed-send":     b.Command(handleSendCommand),
		"embed-edit":     b.Command(handleEditCommand),
		"embed-delete":   b.Command(handleDeleteCommand),
		"embed-template": b.Command(handleTemplateCommand),
	}
}

func Routes(b *bot.Bot) []router.Route {
	return []router.Route{
		{Domain: "embed", Action: "create", Kind: router.Modal, Handler: b.Component(handleCreateModal)},
		{Domain: "embed", Action: "edit", Kind: router.Button, Handler: b.Component(handleEditDraft)},
		{Domain: "embed", Action: "edit", Kind: router.Modal, Handler: b.Component(handleEditModal)},
		{Domain: "embed", Action: "send", Kind: router.Button, Handler: b.Component(handleSendButton)},
		{Domain: "embed", Action: "send", Kind: router.SelectMenu, Handler: b.Component(handleSendChannel)},
		{Domain: "embed", Action: "template", Kind: router.Button, Handler: b.Component(handleTemplateButton)},
		{Domain: "embed", Action: "template", Kind: router.SelectMenu, Handler: b.Component(handleTemplateSelect)},
		{Domain: "embed", Action: "template", Kind: router.Modal, Handler: b.Component(handleTemplateModal)},
	}
}

func loadDraft(ctx context.Context, b *bot.Bot, userID string) (*model.EmbedSession, error) {
	draft, err := b.Stores.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, utils.NewBackendError("load embed session", err)
	}
	return draft, nil
}

func saveDraft(ctx context.Context, b *bot.Bot, i *discordgo.InteractionCreate, data model.EmbedData) error {
	err := b.Stores.Sessions.Put(ctx, &model.EmbedSession{
		UserID:    utils.InvokerID(i),
		GuildID:   i.GuildID,
		Data:      data,
		UpdatedAt: time.Now(),
	}, b.Config.SessionTTL)
	if err != nil {
		return utils.NewBackendError("save embed session", err)
	}
	return nil
}

func errNoDraft() error {
	return utils.NewValidationError("no_embed", "No Embed Found", "You need to create an embed first with `/embed-create`.")
}
