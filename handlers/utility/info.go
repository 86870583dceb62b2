package utility

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func handlePing(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.RespondText(s, i, "Pinging...", false); err != nil {
		return utils.NewCollaboratorError("Error", "respond", err)
	}
	roundtrip := time.Duration(0)
	if created, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		roundtrip = time.Since(created)
	}
	embed := b.Formatter.Create("", "🏓 Pong!", "", utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bot Latency", Value: fmt.Sprintf("%dms", roundtrip.Milliseconds()), Inline: true},
			{Name: "API Heartbeat", Value: fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()), Inline: true},
		},
		Footer: "discordgo " + discordgo.VERSION,
	})
	empty := ""
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &empty,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

// avatarURLs returns the avatar in each static format. Users without a custom avatar only
// have the default PNG.
func avatarURLs(u *discordgo.User) (png string, others map[string]string) {
	if u.Avatar == "" {
		return u.AvatarURL("1024"), nil
	}
	url := func(ext string) string {
		return fmt.Sprintf("%savatars/%s/%s.%s?size=1024", discordgo.EndpointCDN, u.ID, u.Avatar, ext)
	}
	return url("png"), map[string]string{"JPG": url("jpg"), "WebP": url("webp")}
}

func handleAvatar(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	user := opts.User(s, "user")
	if user == nil {
		user = utils.Invoker(i)
	}
	png, others := avatarURLs(user)
	links := fmt.Sprintf("[PNG](%s)", png)
	if others != nil {
		links = fmt.Sprintf("[JPG](%s) | [PNG](%s) | [WebP](%s)", others["JPG"], png, others["WebP"])
	}
	embed := b.Formatter.Create("", user.Username+"'s Avatar", links, utils.EmbedOptions{
		Image:  png,
		Footer: "Requested by " + utils.Invoker(i).String(),
	})
	return utils.RespondEmbed(s, i, false, embed)
}

var verificationLevels = map[discordgo.VerificationLevel]string{
	discordgo.VerificationLevelNone:     "None",
	discordgo.VerificationLevelLow:      "Low",
	discordgo.VerificationLevelMedium:   "Medium",
	discordgo.VerificationLevelHigh:     "High",
	discordgo.VerificationLevelVeryHigh: "Very High",
}

// featureName turns ANIMATED_ICON into "Animated Icon".
func featureName(f string) string {
	words := strings.Split(strings.ToLower(f), "_")
	for n, w := range words {
		if w != "" {
			words[n] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

type channelCounts struct {
	Total, Text, Voice, Categories int
}

func countChannels(channels []*discordgo.Channel) channelCounts {
	c := channelCounts{Total: len(channels)}
	for _, ch := range channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText:
			c.Text++
		case discordgo.ChannelTypeGuildVoice:
			c.Voice++
		case discordgo.ChannelTypeGuildCategory:
			c.Categories++
		}
	}
	return c
}

func handleServerInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	g, err := s.State.Guild(i.GuildID)
	if err != nil {
		if g, err = s.GuildWithCounts(i.GuildID); err != nil {
			return utils.NewCollaboratorError("Error", "fetch server information", err)
		}
	}
	channels := g.Channels
	if len(channels) == 0 {
		if channels, err = s.GuildChannels(i.GuildID); err != nil {
			return utils.NewCollaboratorError("Error", "fetch server information", err)
		}
	}
	members := g.MemberCount
	if members == 0 {
		members = g.ApproximateMemberCount
	}
	created := ""
	if t, err := discordgo.SnowflakeTimestamp(g.ID); err == nil {
		created = fmt.Sprintf("<t:%d:R>", t.Unix())
	}
	cc := countChannels(channels)

	fields := []*discordgo.MessageEmbedField{
		{Name: "Server ID", Value: g.ID, Inline: true},
		{Name: "Owner", Value: "<@" + g.OwnerID + ">", Inline: true},
		{Name: "Created", Value: created, Inline: true},
		{Name: "Members", Value: fmt.Sprintf("Total: %d", members), Inline: true},
		{Name: "Channels", Value: fmt.Sprintf("Total: %d\nText: %d\nVoice: %d\nCategories: %d", cc.Total, cc.Text, cc.Voice, cc.Categories), Inline: true},
		{Name: "Other", Value: fmt.Sprintf("Roles: %d\nEmojis: %d", len(g.Roles), len(g.Emojis)), Inline: true},
	}
	if len(g.Features) > 0 {
		names := make([]string, len(g.Features))
		for n, f := range g.Features {
			names[n] = featureName(string(f))
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Server Features", Value: utils.Truncate(strings.Join(names, ", "), 1024)})
	}
	level, ok := verificationLevels[g.VerificationLevel]
	if !ok {
		level = "Unknown"
	}
	fields = append(fields,
		&discordgo.MessageEmbedField{Name: "Boost Status", Value: fmt.Sprintf("Level %d\nBoosts: %d", g.PremiumTier, g.PremiumSubscriptionCount), Inline: true},
		&discordgo.MessageEmbedField{Name: "Verification Level", Value: level, Inline: true},
	)

	embed := b.Formatter.Create("", "Server Information: "+g.Name, g.Description, utils.EmbedOptions{
		Fields:    fields,
		Thumbnail: g.IconURL("256"),
		Image:     g.BannerURL("1024"),
	})
	return utils.EditEmbed(s, i, embed)
}

// memberRoles returns the member's roles highest first, without @everyone.
func memberRoles(guildRoles []*discordgo.Role, ids []string, guildID string) []*discordgo.Role {
	held := make(map[string]bool, len(ids))
	for _, id := range ids {
		held[id] = true
	}
	var out []*discordgo.Role
	for _, r := range guildRoles {
		if r.ID != guildID && held[r.ID] {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Position > out[b].Position })
	return out
}

// displayColor is the colour of the highest coloured role, zero when none is coloured.
func displayColor(sorted []*discordgo.Role) int {
	for _, r := range sorted {
		if r.Color != 0 {
			return r.Color
		}
	}
	return 0
}

var statusLabels = map[discordgo.Status]string{
	discordgo.StatusOnline:       "🟢 Online",
	discordgo.StatusIdle:         "🟡 Idle",
	discordgo.StatusDoNotDisturb: "🔴 Do Not Disturb",
	discordgo.StatusOffline:      "⚫ Offline",
}

func activityText(a *discordgo.Activity) string {
	switch a.Type {
	case discordgo.ActivityTypeGame:
		return "Playing " + a.Name
	case discordgo.ActivityTypeStreaming:
		return "Streaming " + a.Name
	case discordgo.ActivityTypeListening:
		return "Listening to " + a.Name
	case discordgo.ActivityTypeWatching:
		return "Watching " + a.Name
	case discordgo.ActivityTypeCompeting:
		return "Competing in " + a.Name
	}
	return a.Name
}

func handleUserInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	_, opts := utils.CommandOptions(i)
	user := opts.User(s, "user")
	if user == nil {
		user = utils.Invoker(i)
	}

	fields := []*discordgo.MessageEmbedField{{Name: "User ID", Value: user.ID, Inline: true}}
	if t, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Account Created", Value: fmt.Sprintf("<t:%d:R>", t.Unix()), Inline: true})
	}

	var color int
	if member, err := s.GuildMember(i.GuildID, user.ID); err == nil {
		var guildRoles []*discordgo.Role
		if g, err := s.State.Guild(i.GuildID); err == nil {
			guildRoles = g.Roles
		} else if roles, err := s.GuildRoles(i.GuildID); err == nil {
			guildRoles = roles
		}
		roles := memberRoles(guildRoles, member.Roles, i.GuildID)
		color = displayColor(roles)

		mentions := make([]string, len(roles))
		for n, r := range roles {
			mentions[n] = "<@&" + r.ID + ">"
		}
		roleList := "No roles"
		if len(mentions) > 0 {
			roleList = utils.Truncate(strings.Join(mentions, ", "), 1024)
		}
		nick := member.Nick
		if nick == "" {
			nick = "None"
		}
		joined := "Unknown"
		if !member.JoinedAt.IsZero() {
			joined = fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix())
		}
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Nickname", Value: nick, Inline: true},
			&discordgo.MessageEmbedField{Name: "Joined Server", Value: joined, Inline: true},
			&discordgo.MessageEmbedField{Name: fmt.Sprintf("Roles [%d]", len(roles)), Value: roleList},
		)

		if p, err := s.State.Presence(i.GuildID, user.ID); err == nil {
			label, ok := statusLabels[p.Status]
			if !ok {
				label = statusLabels[discordgo.StatusOffline]
			}
			fields = append(fields, &discordgo.MessageEmbedField{Name: "Status", Value: label, Inline: true})
			if len(p.Activities) > 0 {
				fields = append(fields, &discordgo.MessageEmbedField{Name: "Activity", Value: activityText(p.Activities[0]), Inline: true})
			}
		}
	}

	embed := b.Formatter.Create("", "User Information: "+user.String(), "", utils.EmbedOptions{
		Fields:    fields,
		Thumbnail: user.AvatarURL("256"),
	})
	if color != 0 {
		embed.Color = color
	}
	return utils.EditEmbed(s, i, embed)
}
