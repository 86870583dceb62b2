// Package moderation implements the member actions (ban, kick, timeout), persistent warnings,
// bulk message removal and channel nuking. Every action is mirrored to the guild's mod log,
// except the purely cosmetic nuke animation.
package moderation

import (
	"fmt"

	"community-bot/bot"
	"community-bot/handlers/router"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const defaultReason = "No reason provided"

func Commands(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"ban":    b.Command(handleBan),
		"kick":   b.Command(handleKick),
		"mute":   b.Command(handleMute),
		"unmute": b.Command(handleUnmute),
		"warn":   b.Command(handleWarn),
		"purge":  b.Command(handlePurge),
		"nuke":   b.Command(handleNuke),

		"nukeanimation": b.Command(handleNukeAnimation),
	}
}

func Routes(b *bot.Bot) []router.Route {
	return []router.Route{
		{Domain: "moderation", Action: "nuke", Kind: router.Button, Handler: b.Component(handleNukeButton)},
		{Domain: "moderation", Action: "warnings", Kind: router.Button, Handler: b.Component(handleWarningsPage)},
	}
}

// action describes the wording and the bot permission of one member action.
type action struct {
	title    string // "Ban" as in "Cannot Ban"
	verb     string // "ban" as in "You cannot ban yourself."
	perm     int64
	permText string
	cannot   string
}

var (
	banAction = action{
		title: "Ban", verb: "ban", perm: discordgo.PermissionBanMembers,
		permText: "I don't have permission to ban members.",
		cannot:   "I cannot ban this user. They may have a higher role than me.",
	}
	kickAction = action{
		title: "Kick", verb: "kick", perm: discordgo.PermissionKickMembers,
		permText: "I don't have permission to kick members.",
		cannot:   "I cannot kick this user. They may have a higher role than me.",
	}
	timeoutAction = action{
		title: "Timeout", verb: "timeout", perm: discordgo.PermissionModerateMembers,
		permText: "I don't have permission to timeout members.",
		cannot:   "I cannot timeout this user. They may have a higher role than me.",
	}
	untimeoutAction = action{
		title: "Modify", perm: discordgo.PermissionModerateMembers,
		permText: "I don't have permission to manage timeouts.",
		cannot:   "I cannot modify this user's timeout. They may have a higher role than me.",
	}
)

// checkTarget applies the guards shared by every member action. An empty verb skips the
// self and bot guards.
func checkTarget(a action, invokerID, botID, targetID string, appPerms int64, botOutranks bool) error {
	cannot := "Cannot " + a.title
	if a.verb != "" {
		if targetID == invokerID {
			return utils.NewValidationError("target_self", cannot, fmt.Sprintf("You cannot %s yourself.", a.verb))
		}
		if targetID == botID {
			return utils.NewValidationError("target_bot", cannot, fmt.Sprintf("I cannot %s myself.", a.verb))
		}
	}
	if appPerms&discordgo.PermissionAdministrator == 0 && appPerms&a.perm == 0 {
		return utils.NewValidationError("bot_missing_permission", "Missing Permissions", a.permText)
	}
	if !botOutranks {
		return utils.NewValidationError("target_outranks_bot", cannot, a.cannot)
	}
	return nil
}

// targetMember resolves the user option to a member of the current guild.
func targetMember(s *discordgo.Session, i *discordgo.InteractionCreate, opts utils.Options) (*discordgo.Member, error) {
	id := opts.ID("user")
	if r := i.ApplicationCommandData().Resolved; r != nil {
		if m, ok := r.Members[id]; ok && m != nil {
			if m.User == nil {
				m.User = r.Users[id]
			}
			if m.User != nil {
				m.GuildID = i.GuildID
				return m, nil
			}
		}
	}
	m, err := s.GuildMember(i.GuildID, id)
	if err != nil || m == nil || m.User == nil {
		return nil, utils.NewValidationError("member_not_found", "Error", "User not found in this server.")
	}
	return m, nil
}

// guard runs checkTarget against the live guild.
func guard(s *discordgo.Session, i *discordgo.InteractionCreate, a action, target *discordgo.Member) error {
	return checkTarget(a, utils.InvokerID(i), botID(s), target.User.ID, i.AppPermissions, botOutranks(s, i.GuildID, target))
}

func botID(s *discordgo.Session) string {
	if s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	return ""
}

// botOutranks reports whether the bot's highest role sits above the target's. When the guild
// or the bot member cannot be loaded Discord is left to reject the request.
func botOutranks(s *discordgo.Session, guildID string, target *discordgo.Member) bool {
	g, err := s.State.Guild(guildID)
	if err != nil {
		if g, err = s.Guild(guildID); err != nil {
			return true
		}
	}
	id := botID(s)
	me, err := s.State.Member(guildID, id)
	if err != nil {
		if me, err = s.GuildMember(guildID, id); err != nil {
			return true
		}
	}
	return outranks(g, me, target)
}

// outranks compares the members' highest role positions. The owner outranks everyone and is
// outranked by no one.
func outranks(g *discordgo.Guild, actor, target *discordgo.Member) bool {
	if target.User != nil && target.User.ID == g.OwnerID {
		return false
	}
	if actor.User != nil && actor.User.ID == g.OwnerID {
		return true
	}
	return highestRole(g.Roles, actor.Roles) > highestRole(g.Roles, target.Roles)
}

func highestRole(roles []*discordgo.Role, ids []string) int {
	top := 0
	for _, r := range roles {
		if r.Position <= top {
			continue
		}
		for _, id := range ids {
			if r.ID == id {
				top = r.Position
				break
			}
		}
	}
	return top
}

func guildName(s *discordgo.Session, guildID string) string {
	if g, err := s.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	return "the server"
}

// notify DMs the affected user. Closed DMs are common and only logged.
func notify(s *discordgo.Session, b *bot.Bot, user *discordgo.User, embed *discordgo.MessageEmbed) {
	if err := utils.SendPrivateEmbedMessage(s, user.ID, embed); err != nil {
		b.Logger.Debug("could not send DM", zap.String("user_id", user.ID), zap.Error(err))
	}
}

// modLogEmbed is the audit entry of a member action.
func modLogEmbed(b *bot.Bot, t utils.ResponseType, title, description, footer string, fields ...*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	return b.Formatter.Create(t, title, description, utils.EmbedOptions{Fields: fields, Footer: footer})
}

func field(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value}
}
