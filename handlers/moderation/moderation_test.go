package moderation

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"community-bot/handlers/router"
	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		name     string
		action   action
		targetID string
		perms    int64
		outranks bool
		code     string
	}{
		{"allowed", banAction, "target", discordgo.PermissionBanMembers, true, ""},
		{"administrator", kickAction, "target", discordgo.PermissionAdministrator, true, ""},
		{"self", banAction, "mod", discordgo.PermissionBanMembers, true, "target_self"},
		{"bot", kickAction, "bot", discordgo.PermissionKickMembers, true, "target_bot"},
		{"missing permission", timeoutAction, "target", discordgo.PermissionBanMembers, true, "bot_missing_permission"},
		{"outranked", banAction, "target", discordgo.PermissionBanMembers, false, "target_outranks_bot"},
		{"untimeout skips self guard", untimeoutAction, "mod", discordgo.PermissionModerateMembers, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTarget(tt.action, "mod", "bot", tt.targetID, tt.perms, tt.outranks)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, utils.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCheckTargetMessages(t *testing.T) {
	de := utils.AsDomainError(checkTarget(banAction, "mod", "bot", "mod", discordgo.PermissionBanMembers, true))
	require.NotNil(t, de)
	assert.Equal(t, "Cannot Ban", de.Title)
	assert.Equal(t, "You cannot ban yourself.", de.Message)

	de = utils.AsDomainError(checkTarget(untimeoutAction, "mod", "bot", "target", discordgo.PermissionModerateMembers, false))
	require.NotNil(t, de)
	assert.Equal(t, "Cannot Modify", de.Title)
}

func TestOutranks(t *testing.T) {
	g := &discordgo.Guild{
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "everyone", Position: 0},
			{ID: "member", Position: 1},
			{ID: "mod", Position: 5},
			{ID: "bot", Position: 3},
		},
	}
	member := func(id string, roles ...string) *discordgo.Member {
		return &discordgo.Member{User: &discordgo.User{ID: id}, Roles: roles}
	}

	me := member("me", "bot")
	assert.True(t, outranks(g, me, member("u1", "member")))
	assert.False(t, outranks(g, me, member("u2", "mod", "member")))
	assert.False(t, outranks(g, me, member("u3", "bot")))
	assert.False(t, outranks(g, me, member("owner")))
	assert.True(t, outranks(g, member("owner"), member("u2", "mod")))

	assert.Equal(t, 5, highestRole(g.Roles, []string{"member", "mod"}))
	assert.Equal(t, 0, highestRole(g.Roles, nil))
}

func TestSelectMessages(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	msg := func(id, author, content string, age time.Duration) *discordgo.Message {
		return &discordgo.Message{ID: id, Author: &discordgo.User{ID: author}, Content: content, Timestamp: now.Add(-age)}
	}
	msgs := []*discordgo.Message{
		msg("1", "a", "hello world", time.Hour),
		msg("2", "b", "spam link", time.Hour),
		msg("3", "a", "more spam", 2*time.Hour),
		msg("4", "a", "old spam", 20*24*time.Hour),
		msg("5", "b", "old", 30*24*time.Hour),
	}

	recent, old := selectMessages(msgs, 10, purgeFilter{}, now)
	assert.Equal(t, []string{"1", "2", "3"}, recent)
	assert.Equal(t, []string{"4", "5"}, old)

	recent, old = selectMessages(msgs, 2, purgeFilter{}, now)
	assert.Equal(t, []string{"1", "2"}, recent)
	assert.Empty(t, old)

	recent, old = selectMessages(msgs, 10, purgeFilter{UserID: "a", Contains: "spam"}, now)
	assert.Equal(t, []string{"3"}, recent)
	assert.Equal(t, []string{"4"}, old)

	recent, old = selectMessages(msgs, 10, purgeFilter{Contains: "nothing"}, now)
	assert.Empty(t, recent)
	assert.Empty(t, old)
}

func TestPurgeSummary(t *testing.T) {
	assert.Equal(t, "Successfully deleted 1 message.", purgeSummary(1, purgeFilter{}))
	assert.Equal(t, "Successfully deleted 5 messages (from user <@42> and containing \"spam\").",
		purgeSummary(5, purgeFilter{UserID: "42", Contains: "spam"}))
	assert.Equal(t, "None", filterText(purgeFilter{}, "None"))
}

func TestWarningList(t *testing.T) {
	created := time.Unix(1700000000, 0)
	out := warningList([]*model.Warning{
		{ID: 7, Reason: "spam", IssuedBy: "m1", CreatedAt: created},
		{ID: 9, Reason: "rude", IssuedBy: "m2", CreatedAt: created},
	}, 1)
	assert.Contains(t, out, "This user has 2 warnings:")
	assert.Contains(t, out, "**#1** - **Reason:** spam")
	assert.Contains(t, out, "**#2** - **Reason:** rude")
	assert.Contains(t, out, "<t:1700000000:f>")
	assert.NotContains(t, out, "#7")

	assert.Contains(t, warningList([]*model.Warning{{ID: 1, Reason: "x"}}, 1), "has 1 warning:")
}

func TestWarningListPages(t *testing.T) {
	var all []*model.Warning
	for n := 0; n < 7; n++ {
		all = append(all, &model.Warning{ID: int64(100 + n), Reason: fmt.Sprintf("r%d", n+1)})
	}
	second := warningList(all, 2)
	assert.Contains(t, second, "This user has 7 warnings:")
	assert.Contains(t, second, "**#6** - **Reason:** r6")
	assert.Contains(t, second, "**#7** - **Reason:** r7")
	assert.NotContains(t, second, "**#5**")

	// out of range pages clamp
	assert.Equal(t, second, warningList(all, 9))
	assert.Contains(t, warningList(all, 0), "**#1** - **Reason:** r1")
}

func TestCloneData(t *testing.T) {
	overwrites := []*discordgo.PermissionOverwrite{{ID: "role", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionSendMessages}}
	data := cloneData(&discordgo.Channel{
		ID:                   "c1",
		Name:                 "general",
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                "chat",
		ParentID:             "cat",
		Position:             4,
		RateLimitPerUser:     10,
		NSFW:                 true,
		PermissionOverwrites: overwrites,
	})
	assert.Equal(t, "general", data.Name)
	assert.Equal(t, "cat", data.ParentID)
	assert.Equal(t, 4, data.Position)
	assert.Equal(t, 10, data.RateLimitPerUser)
	assert.True(t, data.NSFW)
	assert.Equal(t, overwrites, data.PermissionOverwrites)
}

func TestTimedOut(t *testing.T) {
	now := time.Now()
	later, earlier := now.Add(time.Hour), now.Add(-time.Hour)
	assert.True(t, timedOut(&discordgo.Member{CommunicationDisabledUntil: &later}, now))
	assert.False(t, timedOut(&discordgo.Member{CommunicationDisabledUntil: &earlier}, now))
	assert.False(t, timedOut(&discordgo.Member{}, now))
}

func TestNukeButtonIDs(t *testing.T) {
	id, ok := router.Parse("moderation_nuke_confirm_ab12cd34")
	require.True(t, ok)
	assert.Equal(t, router.ID{Domain: "moderation", Action: "nuke", Args: []string{"confirm", "ab12cd34"}}, id)
}

func TestAnimationFor(t *testing.T) {
	for _, kind := range []string{"nuclear", "boom", "thanos"} {
		t.Run(kind, func(t *testing.T) {
			anim, ok := animationFor(kind)
			require.True(t, ok)
			require.NotEmpty(t, anim.frames)
			assert.NotEmpty(t, anim.complete)
			for _, frame := range anim.frames {
				assert.True(t, strings.HasPrefix(frame, "```\n"), frame)
				assert.True(t, strings.HasSuffix(frame, "\n```"), frame)
				assert.LessOrEqual(t, len(frame), 2000)
			}
		})
	}

	nuclear, _ := animationFor("nuclear")
	assert.Contains(t, nuclear.frames[0], "NUCLEAR LAUNCH DETECTED - 3")
	assert.Greater(t, strings.Count(nuclear.frames[3], "\n"), 3, "the banner frame is multi-line figlet art")

	_, ok := animationFor("fireworks")
	assert.False(t, ok)
}
