package router

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   ID
		wantOK bool
	}{
		{name: "plain", in: "ticket_claim", want: ID{Domain: "ticket", Action: "claim", Args: []string{}}, wantOK: true},
		{name: "args", in: "embed_edit_modal_123_456", want: ID{Domain: "embed", Action: "edit", Args: []string{"modal", "123", "456"}}, wantOK: true},
		{name: "trailing underscore", in: "ticket_claim_", want: ID{Domain: "ticket", Action: "claim", Args: []string{}}, wantOK: true},
		{name: "inner empty kept", in: "fun_rps__rock", want: ID{Domain: "fun", Action: "rps", Args: []string{"", "rock"}}, wantOK: true},
		{name: "domain only", in: "ticket", wantOK: false},
		{name: "empty", in: "", wantOK: false},
		{name: "missing domain", in: "_claim", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func buttonInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.ButtonComponent},
	}}
}

func selectInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.SelectMenuComponent},
	}}
}

func modalInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionModalSubmit,
		Data: discordgo.ModalSubmitInteractionData{CustomID: customID},
	}}
}

func TestDispatch(t *testing.T) {
	r := New(zap.NewNop())

	var gotArgs []string
	r.Handle("embed", "template", Button, func(_ *discordgo.Session, _ *discordgo.InteractionCreate, args []string) error {
		gotArgs = args
		return nil
	})

	handled, err := r.Dispatch(nil, buttonInteraction("embed_template_use_welcome"))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"use", "welcome"}, gotArgs)
}

func TestDispatchMatchesKind(t *testing.T) {
	r := New(zap.NewNop())
	calls := map[Kind]int{}
	for _, k := range []Kind{Button, SelectMenu, Modal} {
		k := k
		r.Handle("ticket", "open", k, func(*discordgo.Session, *discordgo.InteractionCreate, []string) error {
			calls[k]++
			return nil
		})
	}

	for _, i := range []*discordgo.InteractionCreate{
		buttonInteraction("ticket_open_default"),
		selectInteraction("ticket_open_select"),
		modalInteraction("ticket_open_modal"),
	} {
		handled, err := r.Dispatch(nil, i)
		require.NoError(t, err)
		require.True(t, handled)
	}
	assert.Equal(t, map[Kind]int{Button: 1, SelectMenu: 1, Modal: 1}, calls)
}

func TestDispatchUnknownIsIgnored(t *testing.T) {
	r := New(zap.NewNop())
	r.Handle("ticket", "claim", Button, func(*discordgo.Session, *discordgo.InteractionCreate, []string) error {
		t.Fatal("must not be called")
		return nil
	})

	for _, i := range []*discordgo.InteractionCreate{
		buttonInteraction("unknown_action"),
		buttonInteraction("ticket"),
		buttonInteraction(""),
		modalInteraction("ticket_claim"),
		{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}},
	} {
		handled, err := r.Dispatch(nil, i)
		assert.NoError(t, err)
		assert.False(t, handled)
	}
}

func TestDispatchReturnsHandlerError(t *testing.T) {
	r := New(zap.NewNop())
	boom := errors.New("boom")
	r.HandleAll([]Route{{Domain: "fun", Action: "rps", Kind: Button, Handler: func(*discordgo.Session, *discordgo.InteractionCreate, []string) error {
		return boom
	}}})

	handled, err := r.Dispatch(nil, buttonInteraction("fun_rps_rock"))
	assert.True(t, handled)
	assert.ErrorIs(t, err, boom)
}
