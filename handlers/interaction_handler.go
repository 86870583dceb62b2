package handlers

import (
	"fmt"
	"time"

	"community-bot/bot"
	"community-bot/commands"
	"community-bot/handlers/router"
	"community-bot/monitoring"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Interaction outcomes, used as the metrics label.
const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomePanic    = "panic"
	outcomeUnknown  = "unknown"
	outcomeCooldown = "cooldown"
)

func handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	kind, name := describeInteraction(i)
	start := time.Now()
	outcome := outcomeOK

	defer func() {
		if r := recover(); r != nil {
			outcome = outcomePanic
			b.Logger.Error("panic in interaction handler",
				zap.String("kind", kind),
				zap.String("name", name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			if kind != "autocomplete" {
				reportError(s, i, b, name, fmt.Errorf("panic: %v", r))
			}
		}
		monitoring.TotalInteractions.WithLabelValues(kind, name, outcome).Inc()
		monitoring.InteractionDuration.WithLabelValues(kind, name).Observe(time.Since(start).Seconds())
	}()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		outcome, err = runCommand(s, i, b, name)
	case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
		var handled bool
		handled, err = b.Router.Dispatch(s, i)
		if !handled {
			outcome = outcomeUnknown
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		handleAutocomplete(s, i, b)
		return
	}

	if err != nil {
		outcome = outcomeError
		reportError(s, i, b, name, err)
	}
}

func runCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, name string) (string, error) {
	h, ok := b.CommandHandlers[name]
	if !ok {
		b.Logger.Debug("no handler for command", zap.String("command", name))
		return outcomeUnknown, utils.RespondText(s, i, "This command is not available.", true)
	}

	cooldown := b.CooldownFor(commands.CategoryOf(name))
	if allowed, wait := b.Cooldowns.Allow(utils.InvokerID(i), name, cooldown); !allowed {
		return outcomeCooldown, utils.RespondText(s, i, cooldownMessage(name, wait), true)
	}
	return outcomeOK, h(s, i)
}

// describeInteraction returns the metrics kind and name of an interaction. Components are named
// by domain and action so token arguments do not explode label cardinality.
func describeInteraction(i *discordgo.InteractionCreate) (kind, name string) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return "command", i.ApplicationCommandData().Name
	case discordgo.InteractionApplicationCommandAutocomplete:
		return "autocomplete", i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
		k, customID, _ := router.KindOf(i)
		if id, ok := router.Parse(customID); ok {
			return k.String(), id.Domain + "_" + id.Action
		}
		return k.String(), "unknown"
	}
	return "other", "unknown"
}

func cooldownMessage(name string, wait time.Duration) string {
	return fmt.Sprintf("Please wait %.1f more second(s) before reusing the `/%s` command.", wait.Seconds(), name)
}

// describeError picks what the user sees for err.
func describeError(err error) (title, message string, kind utils.ErrorKind) {
	de := utils.AsDomainError(err)
	if de == nil {
		return "Error", utils.GenericErrorMessage, utils.KindInternal
	}
	return de.UserTitle(), de.UserMessage(), de.Kind
}

// reportError answers the interaction with an ephemeral error embed. Handlers that already
// deferred get their deferred reply edited instead.
func reportError(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, name string, err error) {
	title, message, kind := describeError(err)
	fields := []zap.Field{
		zap.String("name", name),
		zap.String("guild_id", i.GuildID),
		zap.String("user_id", utils.InvokerID(i)),
		zap.Error(err),
	}
	switch kind {
	case utils.KindValidation:
		b.Logger.Debug("interaction rejected", fields...)
	case utils.KindCollaborator:
		b.Logger.Warn("discord request failed", fields...)
	default:
		b.Logger.Error("interaction failed", fields...)
	}

	embed := b.Formatter.Error(title, message)
	if rerr := utils.RespondEmbed(s, i, true, embed); rerr == nil {
		return
	}
	if rerr := utils.EditEmbed(s, i, embed); rerr != nil {
		b.Logger.Warn("failed to report error to user", zap.String("name", name), zap.Error(rerr))
	}
}
