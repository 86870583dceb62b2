package utility

import (
	"context"
	"fmt"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

func handleDatabase(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.RequirePermission(i, discordgo.PermissionAdministrator); err != nil {
		return err
	}
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	start := time.Now()
	err := b.Stores.Ping(ctx)
	latency := time.Since(start)

	fields := []*discordgo.MessageEmbedField{
		{Name: "Backend", Value: b.Stores.Backend(), Inline: true},
		{Name: "Latency", Value: fmt.Sprintf("%dms", latency.Milliseconds()), Inline: true},
		{Name: "Server Time", Value: fmt.Sprintf("<t:%d:F>", time.Now().Unix()), Inline: true},
	}
	if err != nil {
		b.Logger.Warn("database status check failed", zap.String("backend", b.Stores.Backend()), zap.Error(err))
		return utils.EditEmbed(s, i, b.Formatter.Error("Database Error",
			fmt.Sprintf("Failed to connect to the database: %v", err), utils.EmbedOptions{Fields: fields}))
	}
	if b.Stores.Degraded {
		return utils.EditEmbed(s, i, b.Formatter.Warning("Database Unavailable",
			"The configured database could not be reached at startup. Records are kept in memory and will not survive a restart.",
			utils.EmbedOptions{Fields: fields}))
	}
	return utils.EditEmbed(s, i, b.Formatter.Success("Database Connected", "Successfully connected to the database.",
		utils.EmbedOptions{Fields: fields}))
}
