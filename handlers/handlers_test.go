package handlers

import (
	"errors"
	"strings"
	"testing"
	"time"

	"community-bot/bot"
	"community-bot/commands"
	"community-bot/handlers/router"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCommands(t *testing.T) {
	first := func(*discordgo.Session, *discordgo.InteractionCreate) error { return errors.New("first") }
	second := func(*discordgo.Session, *discordgo.InteractionCreate) error { return errors.New("second") }

	merged := mergeCommands(
		map[string]bot.CommandHandler{"ping": first},
		map[string]bot.CommandHandler{"ping": second, "help": second},
	)
	require.Len(t, merged, 2)
	assert.EqualError(t, merged["ping"](nil, nil), "first")
	assert.EqualError(t, merged["help"](nil, nil), "second")
}

func TestEveryCommandHasAHandler(t *testing.T) {
	handlers := commandHandlers(&bot.Bot{})
	for _, e := range commands.Entries() {
		assert.Contains(t, handlers, e.Command.Name)
	}
	assert.Len(t, handlers, len(commands.Entries()))
}

func TestRoutesAreUnique(t *testing.T) {
	type key struct {
		domain, action string
		kind           router.Kind
	}
	seen := map[key]bool{}
	for _, r := range componentRoutes(&bot.Bot{}) {
		k := key{r.Domain, r.Action, r.Kind}
		assert.False(t, seen[k], "duplicate route %s_%s (%s)", r.Domain, r.Action, r.Kind)
		seen[k] = true
		require.NotNil(t, r.Handler)
	}
	assert.True(t, seen[key{"moderation", "warnings", router.Button}])
	assert.True(t, seen[key{"worldclock", "select", router.SelectMenu}])
}

func TestDescribeInteraction(t *testing.T) {
	tests := []struct {
		name     string
		i        *discordgo.Interaction
		wantKind string
		wantName string
	}{
		{
			name:     "command",
			i:        &discordgo.Interaction{Type: discordgo.InteractionApplicationCommand, Data: discordgo.ApplicationCommandInteractionData{Name: "ping"}},
			wantKind: "command",
			wantName: "ping",
		},
		{
			name: "button drops args",
			i: &discordgo.Interaction{Type: discordgo.InteractionMessageComponent, Data: discordgo.MessageComponentInteractionData{
				CustomID: "fun_rps_rock_tok12345", ComponentType: discordgo.ButtonComponent,
			}},
			wantKind: "button",
			wantName: "fun_rps",
		},
		{
			name: "select menu",
			i: &discordgo.Interaction{Type: discordgo.InteractionMessageComponent, Data: discordgo.MessageComponentInteractionData{
				CustomID: "worldclock_select", ComponentType: discordgo.SelectMenuComponent,
			}},
			wantKind: "select_menu",
			wantName: "worldclock_select",
		},
		{
			name:     "modal",
			i:        &discordgo.Interaction{Type: discordgo.InteractionModalSubmit, Data: discordgo.ModalSubmitInteractionData{CustomID: "ticket_rename"}},
			wantKind: "modal",
			wantName: "ticket_rename",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, name := describeInteraction(&discordgo.InteractionCreate{Interaction: tt.i})
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestCooldownMessage(t *testing.T) {
	assert.Equal(t, "Please wait 2.5 more second(s) before reusing the `/8ball` command.",
		cooldownMessage("8ball", 2500*time.Millisecond))
}

func TestDescribeError(t *testing.T) {
	title, msg, kind := describeError(utils.NewValidationError("not_ticket", "Not a Ticket", "This is not a ticket channel."))
	assert.Equal(t, "Not a Ticket", title)
	assert.Equal(t, "This is not a ticket channel.", msg)
	assert.Equal(t, utils.KindValidation, kind)

	title, msg, kind = describeError(utils.NewBackendError("get ticket", errors.New("connection refused")))
	assert.Equal(t, utils.GenericErrorMessage, msg)
	assert.Equal(t, utils.KindBackend, kind)
	assert.NotContains(t, title+msg, "connection refused")

	_, msg, kind = describeError(errors.New("boom"))
	assert.Equal(t, utils.GenericErrorMessage, msg)
	assert.Equal(t, utils.KindInternal, kind)
}

func TestFilterChoices(t *testing.T) {
	got := filterChoices([]string{"Welcome", "rules", "Announcement"}, "  WEL ")
	require.Len(t, got, 1)
	assert.Equal(t, "Welcome", got[0].Name)
	assert.Equal(t, "Welcome", got[0].Value)

	many := make([]string, 40)
	for i := range many {
		many[i] = "template" + strings.Repeat("x", i)
	}
	assert.Len(t, filterChoices(many, ""), maxChoices)
}

func TestCommandChoices(t *testing.T) {
	var names []string
	for _, c := range commandChoices("ticket-c") {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"ticket-close", "ticket-claim", "ticket-category"}, names)
}

func TestTranscriptMessage(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := transcriptMessage(&discordgo.Message{
		ID:          "m1",
		Content:     "hello",
		Timestamp:   ts,
		Author:      &discordgo.User{ID: "u1", Username: "alice"},
		Attachments: []*discordgo.MessageAttachment{{URL: "https://cdn.example/a.png"}},
	})
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "u1", msg.AuthorID)
	assert.Equal(t, "alice", msg.Author)
	assert.Equal(t, ts, msg.Timestamp)
	assert.Equal(t, []string{"https://cdn.example/a.png"}, msg.Attachments)
}
