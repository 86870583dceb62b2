package moderation

import (
	"fmt"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// bulkDeleteWindow is the maximum message age Discord accepts for bulk deletion.
const bulkDeleteWindow = 14 * 24 * time.Hour

// purgeFilter narrows the messages a purge removes. Empty fields match everything.
type purgeFilter struct {
	UserID   string
	Contains string
}

func (f purgeFilter) match(m *discordgo.Message) bool {
	if f.UserID != "" && (m.Author == nil || m.Author.ID != f.UserID) {
		return false
	}
	return f.Contains == "" || strings.Contains(m.Content, f.Contains)
}

// selectMessages picks up to amount matching messages, newest first, and splits them into
// those young enough for bulk deletion and those that must be removed one by one.
func selectMessages(msgs []*discordgo.Message, amount int, f purgeFilter, now time.Time) (recent, old []string) {
	cutoff := now.Add(-bulkDeleteWindow)
	for _, m := range msgs {
		if len(recent)+len(old) >= amount {
			break
		}
		if !f.match(m) {
			continue
		}
		if m.Timestamp.After(cutoff) {
			recent = append(recent, m.ID)
		} else {
			old = append(old, m.ID)
		}
	}
	return recent, old
}

func handlePurge(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	_, opts := utils.CommandOptions(i)
	amount := int(opts.Int("amount", 0))
	if amount < 1 || amount > 100 {
		return utils.NewValidationError("invalid_amount", "Invalid Amount", "Please provide a number between 1 and 100.")
	}
	filter := purgeFilter{UserID: opts.ID("user"), Contains: opts.String("contains", "")}

	msgs, err := s.ChannelMessages(i.ChannelID, min(amount+10, 100), "", "", "")
	if err != nil {
		return utils.NewCollaboratorError("Purge Failed", "purge messages", err)
	}
	recent, old := selectMessages(msgs, amount, filter, time.Now())

	deleted := 0
	switch {
	case len(recent) == 1:
		old = append(recent, old...)
	case len(recent) > 1:
		if err := s.ChannelMessagesBulkDelete(i.ChannelID, recent); err != nil {
			b.Logger.Warn("bulk delete failed, deleting individually", zap.String("channel_id", i.ChannelID), zap.Error(err))
			old = append(recent, old...)
		} else {
			deleted += len(recent)
		}
	}
	for _, id := range old {
		if err := s.ChannelMessageDelete(i.ChannelID, id); err != nil {
			b.Logger.Debug("failed to delete message", zap.String("message_id", id), zap.Error(err))
			continue
		}
		deleted++
	}

	if deleted == 0 {
		return utils.EditEmbed(s, i, b.Formatter.Info("No Messages Deleted", "No messages were found matching your criteria."))
	}

	moderator := utils.Invoker(i)
	b.Logger.Info("messages purged",
		zap.String("guild_id", i.GuildID),
		zap.String("channel_id", i.ChannelID),
		zap.Int("count", deleted),
		zap.String("moderator_id", moderator.ID))
	b.Audit.ModLog(i.GuildID, modLogEmbed(b, utils.TypeWarning, "Messages Purged",
		fmt.Sprintf("%d message(s) were deleted in <#%s> by %s", deleted, i.ChannelID, moderator.String()),
		"Action by "+moderator.String(),
		field("Filters", filterText(filter, "None"))))

	return utils.EditEmbed(s, i, b.Formatter.Success("Messages Purged", purgeSummary(deleted, filter)))
}

func filterText(f purgeFilter, none string) string {
	var parts []string
	if f.UserID != "" {
		parts = append(parts, fmt.Sprintf("from user <@%s>", f.UserID))
	}
	if f.Contains != "" {
		parts = append(parts, fmt.Sprintf("containing \"%s\"", f.Contains))
	}
	if len(parts) == 0 {
		return none
	}
	return strings.Join(parts, " and ")
}

func purgeSummary(deleted int, f purgeFilter) string {
	plural := "s"
	if deleted == 1 {
		plural = ""
	}
	filters := filterText(f, "")
	if filters != "" {
		filters = " (" + filters + ")"
	}
	return fmt.Sprintf("Successfully deleted %d message%s%s.", deleted, plural, filters)
}
