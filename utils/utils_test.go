package utils

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHexColor(t *testing.T) {
	for _, ok := range []string{"#FFF", "#abcdef", "#5865F2"} {
		assert.True(t, IsHexColor(ok), ok)
	}
	for _, bad := range []string{"FFF", "#FFFF", "#GGGGGG", "", "#12345"} {
		assert.False(t, IsHexColor(bad), bad)
	}
}

func TestFormatHexColor(t *testing.T) {
	assert.Equal(t, "#00FF00", FormatHexColor(0x00FF00))
	assert.Equal(t, "#000001", FormatHexColor(1))
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		clamped bool
		wantErr bool
	}{
		{in: "10m", want: 10 * time.Minute},
		{in: "1d12h", want: 36 * time.Hour},
		{in: "2w", want: 14 * 24 * time.Hour},
		{in: "1 h", want: time.Hour},
		{in: "60d", want: MaxTimeout, clamped: true},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "0s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, clamped, err := ParseTimeout(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, d)
			require.Equal(t, tt.clamped, clamped)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1d 2h", FormatDuration(26*time.Hour))
	assert.Equal(t, "1m 5s", FormatDuration(65*time.Second))
	assert.Equal(t, "0s", FormatDuration(0))
}

func TestDomainError(t *testing.T) {
	cause := errors.New("boom")

	v := NewValidationError("already_claimed", "Already Claimed", "This ticket is already claimed by <@1>.")
	de := AsDomainError(fmt.Errorf("wrapped: %w", v))
	assert.Equal(t, KindValidation, de.Kind)
	assert.Equal(t, "This ticket is already claimed by <@1>.", de.UserMessage())
	assert.Equal(t, "Already Claimed", de.UserTitle())
	assert.True(t, HasCode(v, "already_claimed"))

	b := AsDomainError(NewBackendError("load ticket", cause))
	assert.Equal(t, GenericErrorMessage, b.UserMessage())
	assert.ErrorIs(t, b, cause)

	c := AsDomainError(NewCollaboratorError("Ban Failed", "ban member", cause))
	assert.Equal(t, "Failed to ban member: boom", c.UserMessage())

	i := AsDomainError(cause)
	assert.Equal(t, KindInternal, i.Kind)
	assert.Equal(t, GenericErrorMessage, i.UserMessage())
	assert.Equal(t, "Error", i.UserTitle())

	assert.Nil(t, AsDomainError(nil))
}

func TestCooldowns(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCooldowns()
	c.now = func() time.Time { return now }

	ok, _ := c.Allow("u1", "ping", 3*time.Second)
	require.True(t, ok)

	ok, wait := c.Allow("u1", "ping", 3*time.Second)
	require.False(t, ok)
	assert.InDelta(t, float64(3*time.Second), float64(wait), float64(10*time.Millisecond))

	ok, _ = c.Allow("u2", "ping", 3*time.Second)
	assert.True(t, ok, "cooldowns are per user")
	ok, _ = c.Allow("u1", "coinflip", 3*time.Second)
	assert.True(t, ok, "cooldowns are per command")

	now = now.Add(3 * time.Second)
	ok, _ = c.Allow("u1", "ping", 3*time.Second)
	assert.True(t, ok)

	ok, _ = c.Allow("u1", "ping", 0)
	assert.True(t, ok, "no cooldown configured")
}

func TestCooldownsPrune(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCooldowns()
	c.now = func() time.Time { return now }

	c.Allow("u1", "ping", time.Second)
	now = now.Add(2 * time.Second)
	c.Prune()
	assert.Empty(t, c.limiters)
}

func TestPendingResolve(t *testing.T) {
	p := NewPending(time.Hour)
	var expired atomic.Bool

	a := p.Register("u1", map[string]string{"channel": "c1"}, func(*PendingAction) { expired.Store(true) })
	require.NotEmpty(t, a.Token)
	assert.Equal(t, 1, p.Len())
	assert.Same(t, a, p.Peek(a.Token))

	got := p.Resolve(a.Token)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.Data["channel"])
	assert.Nil(t, p.Resolve(a.Token), "a token resolves once")
	assert.False(t, expired.Load())
}

func TestPendingExpires(t *testing.T) {
	p := NewPending(10 * time.Millisecond)
	done := make(chan string, 1)

	a := p.Register("u1", nil, func(a *PendingAction) { done <- a.OwnerID })

	select {
	case owner := <-done:
		assert.Equal(t, "u1", owner)
	case <-time.After(time.Second):
		t.Fatal("pending action did not expire")
	}
	assert.Nil(t, p.Resolve(a.Token))
	assert.Equal(t, 0, p.Len())
}

func TestFindTextChannel(t *testing.T) {
	channels := []*discordgo.Channel{
		{ID: "1", Name: "general", Type: discordgo.ChannelTypeGuildText},
		{ID: "2", Name: "Mod-Logs", Type: discordgo.ChannelTypeGuildText},
		{ID: "3", Name: "logs", Type: discordgo.ChannelTypeGuildVoice},
	}
	assert.Equal(t, "2", FindTextChannel(channels, "mod-logs").ID)
	assert.Equal(t, "2", FindTextChannel(channels, "#mod-logs").ID)
	assert.Equal(t, "1", FindTextChannel(channels, "1").ID)
	assert.Nil(t, FindTextChannel(channels, "logs"), "voice channels are skipped by name")
	assert.Nil(t, FindTextChannel(channels, ""))
}

func TestHasPermission(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Permissions: discordgo.PermissionBanMembers},
	}}
	assert.True(t, HasPermission(i, discordgo.PermissionBanMembers))
	assert.False(t, HasPermission(i, discordgo.PermissionKickMembers))
	require.Error(t, RequirePermission(i, discordgo.PermissionKickMembers))

	i.Member.Permissions = discordgo.PermissionAdministrator
	assert.True(t, HasPermission(i, discordgo.PermissionKickMembers))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "9"}}}
	assert.False(t, HasPermission(dm, discordgo.PermissionBanMembers))
	assert.Equal(t, "9", InvokerID(dm))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff([]string{"a", "b"}, []string{"b"}))
	assert.False(t, IsStaff([]string{"a"}, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdefgh", 5))
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		total, perPage, page            int
		start, end, clamped, wantPages int
	}{
		{total: 0, perPage: 5, page: 1, start: 0, end: 0, clamped: 1, wantPages: 1},
		{total: 7, perPage: 5, page: 1, start: 0, end: 5, clamped: 1, wantPages: 2},
		{total: 7, perPage: 5, page: 2, start: 5, end: 7, clamped: 2, wantPages: 2},
		{total: 7, perPage: 5, page: 9, start: 5, end: 7, clamped: 2, wantPages: 2},
		{total: 10, perPage: 5, page: -1, start: 0, end: 5, clamped: 1, wantPages: 2},
	}
	for _, tt := range tests {
		start, end, clamped, pages := PageBounds(tt.total, tt.perPage, tt.page)
		assert.Equal(t, []int{tt.start, tt.end, tt.clamped, tt.wantPages}, []int{start, end, clamped, pages})
	}
}

func TestCreatePaginationComponents(t *testing.T) {
	assert.Nil(t, CreatePaginationComponents(1, 1, "moderation_warnings", "42"))

	comps := CreatePaginationComponents(1, 3, "moderation_warnings", "42")
	require.Len(t, comps, 1)
	row := comps[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 3)

	prev := row.Components[0].(discordgo.Button)
	next := row.Components[2].(discordgo.Button)
	assert.True(t, prev.Disabled)
	assert.False(t, next.Disabled)
	assert.Equal(t, "moderation_warnings_42_2", next.CustomID)
	assert.Equal(t, "1/3", row.Components[1].(discordgo.Button).Label)
}

func TestParseMessageRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		channel string
		message string
		ok      bool
	}{
		{name: "bare id", input: " 123456789012345678 ", channel: "current", message: "123456789012345678", ok: true},
		{name: "link", input: "https://discord.com/channels/111111111111111111/222222222222222222/333333333333333333", channel: "222222222222222222", message: "333333333333333333", ok: true},
		{name: "canary link", input: "https://canary.discord.com/channels/111111111111111111/222222222222222222/333333333333333333", channel: "222222222222222222", message: "333333333333333333", ok: true},
		{name: "garbage", input: "hello", ok: false},
		{name: "short number", input: "12345", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channel, message, ok := ParseMessageRef(tt.input, "current")
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.channel, channel)
			assert.Equal(t, tt.message, message)
		})
	}
}
