package moderation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"community-bot/bot"
	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	sub, opts := utils.CommandOptions(i)
	user := opts.User(s, "user")
	if user == nil {
		return utils.NewValidationError("member_not_found", "Error", "User not found in this server.")
	}

	ctx := context.Background()
	switch sub {
	case "add":
		return addWarning(ctx, s, i, b, user, opts.String("reason", defaultReason))
	case "list":
		return listWarnings(ctx, s, i, b, user)
	case "remove":
		return removeWarning(ctx, s, i, b, user, int(opts.Int("warning-id", 0)))
	case "clear":
		return clearWarnings(ctx, s, i, b, user)
	}
	return nil
}

func addWarning(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, user *discordgo.User, reason string) error {
	moderator := utils.Invoker(i)
	if user.ID == moderator.ID {
		return utils.NewValidationError("target_self", "Cannot Warn", "You cannot warn yourself.")
	}
	if user.Bot {
		return utils.NewValidationError("target_bot", "Cannot Warn", "You cannot warn a bot.")
	}

	w, err := b.Stores.Warnings.Add(ctx, &model.Warning{
		GuildID:  i.GuildID,
		UserID:   user.ID,
		IssuedBy: moderator.ID,
		Reason:   reason,
	})
	if err != nil {
		return utils.NewBackendError("add warning", err)
	}
	all, err := b.Stores.Warnings.List(ctx, i.GuildID, user.ID)
	if err != nil {
		return utils.NewBackendError("list warnings", err)
	}
	count := strconv.Itoa(len(all))
	b.Logger.Info("member warned",
		zap.String("guild_id", i.GuildID),
		zap.String("user_id", user.ID),
		zap.Int64("warning_id", w.ID),
		zap.String("moderator_id", moderator.ID))

	notify(s, b, user, b.Formatter.Warning("You have been warned in "+guildName(s, i.GuildID),
		fmt.Sprintf("**Reason:** %s\n**Warning Count:** %s", reason, count),
		utils.EmbedOptions{Footer: "Please follow the server rules to avoid further action."}))

	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeWarning, "User Warned",
		fmt.Sprintf("**%s** (%s) was warned by %s", user.String(), user.ID, moderator.String()),
		"Warned by "+moderator.String(),
		field("Reason", reason),
		field("Warning ID", strconv.FormatInt(w.ID, 10)),
		field("Total Warnings", count)))

	return utils.EditEmbed(s, i, b.Formatter.Success("User Warned",
		fmt.Sprintf("Successfully warned %s.", user.String()),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{field("Reason", reason), field("Warning Count", count)}}))
}

const warningsPerPage = 5

func listWarnings(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, user *discordgo.User) error {
	embed, comps, err := warningsPage(ctx, b, i.GuildID, user, 1)
	if err != nil {
		return err
	}
	return utils.EditEmbed(s, i, embed, comps...)
}

// warningsPage renders one page of a user's warnings with its navigation buttons.
func warningsPage(ctx context.Context, b *bot.Bot, guildID string, user *discordgo.User, page int) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	all, err := b.Stores.Warnings.List(ctx, guildID, user.ID)
	if err != nil {
		return nil, nil, utils.NewBackendError("list warnings", err)
	}
	if len(all) == 0 {
		return b.Formatter.Info("No Warnings", user.String()+" has no warnings."), nil, nil
	}
	_, _, page, pages := utils.PageBounds(len(all), warningsPerPage, page)
	embed := b.Formatter.Info("Warnings for "+user.String(), utils.Truncate(warningList(all, page), 4096))
	return embed, utils.CreatePaginationComponents(page, pages, "moderation_warnings", user.ID), nil
}

// handleWarningsPage serves moderation_warnings_<userID>_<page>.
func handleWarningsPage(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) != 2 {
		return nil
	}
	page, err := strconv.Atoi(args[1])
	if err != nil {
		return nil
	}
	if err := utils.RequirePermission(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	user, err := s.User(args[0])
	if err != nil {
		return utils.NewCollaboratorError("Error", "fetch the user", err)
	}
	embed, comps, err := warningsPage(context.Background(), b, i.GuildID, user, page)
	if err != nil {
		return err
	}
	return utils.UpdateMessage(s, i, embed, comps...)
}

// warningList renders one page of warnings. Numbers are positions in all, which is what
// /warn remove takes.
func warningList(all []*model.Warning, page int) string {
	plural := "s"
	if len(all) == 1 {
		plural = ""
	}
	start, end, _, _ := utils.PageBounds(len(all), warningsPerPage, page)
	lines := make([]string, 0, end-start)
	for n := start; n < end; n++ {
		w := all[n]
		lines = append(lines, fmt.Sprintf("**#%d** - **Reason:** %s\n**Date:** <t:%d:f> - **Moderator:** <@%s>",
			n+1, w.Reason, w.CreatedAt.Unix(), w.IssuedBy))
	}
	return fmt.Sprintf("This user has %d warning%s:\n\n%s", len(all), plural, strings.Join(lines, "\n\n"))
}

func removeWarning(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, user *discordgo.User, number int) error {
	all, err := b.Stores.Warnings.List(ctx, i.GuildID, user.ID)
	if err != nil {
		return utils.NewBackendError("list warnings", err)
	}
	if len(all) == 0 {
		return utils.NewValidationError("no_warnings", "No Warnings", user.String()+" has no warnings.")
	}
	if number < 1 || number > len(all) {
		return utils.NewValidationError("warning_not_found", "Warning Not Found",
			fmt.Sprintf("Could not find a warning with ID %d for %s.", number, user.String()))
	}
	removed := all[number-1]
	ok, err := b.Stores.Warnings.Delete(ctx, i.GuildID, user.ID, removed.ID)
	if err != nil {
		return utils.NewBackendError("delete warning", err)
	}
	if !ok {
		// removed concurrently
		return utils.NewValidationError("warning_not_found", "Warning Not Found",
			fmt.Sprintf("Could not find a warning with ID %d for %s.", number, user.String()))
	}
	remaining := strconv.Itoa(len(all) - 1)
	moderator := utils.Invoker(i)

	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeSuccess, "Warning Removed",
		fmt.Sprintf("A warning was removed from **%s** (%s) by %s", user.String(), user.ID, moderator.String()),
		"Action by "+moderator.String(),
		field("Removed Warning Reason", removed.Reason),
		field("Original Warning ID", strconv.FormatInt(removed.ID, 10)),
		field("Remaining Warnings", remaining)))

	return utils.EditEmbed(s, i, b.Formatter.Success("Warning Removed",
		fmt.Sprintf("Successfully removed warning %d from %s.", number, user.String()),
		utils.EmbedOptions{Fields: []*discordgo.MessageEmbedField{field("Remaining Warnings", remaining)}}))
}

func clearWarnings(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, user *discordgo.User) error {
	n, err := b.Stores.Warnings.Clear(ctx, i.GuildID, user.ID)
	if err != nil {
		return utils.NewBackendError("clear warnings", err)
	}
	if n == 0 {
		return utils.NewValidationError("no_warnings", "No Warnings", user.String()+" has no warnings.")
	}
	moderator := utils.Invoker(i)

	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeSuccess, "Warnings Cleared",
		fmt.Sprintf("All warnings were cleared from **%s** (%s) by %s", user.String(), user.ID, moderator.String()),
		"Action by "+moderator.String(),
		field("Cleared Warnings", strconv.Itoa(n))))

	return utils.EditEmbed(s, i, b.Formatter.Success("Warnings Cleared",
		fmt.Sprintf("Successfully cleared all warnings (%d) from %s.", n, user.String())))
}
