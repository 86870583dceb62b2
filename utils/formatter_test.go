package utils

import (
	"testing"
	"time"

	"community-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormatter() *Formatter {
	return &Formatter{
		Palette: DefaultPalette,
		Now:     func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestFormatterColours(t *testing.T) {
	f := testFormatter()

	tests := []struct {
		name  string
		embed *discordgo.MessageEmbed
		want  int
	}{
		{name: "success", embed: f.Success("a", "b"), want: 0x57F287},
		{name: "error", embed: f.Error("a", "b"), want: 0xED4245},
		{name: "warning", embed: f.Warning("a", "b"), want: 0xFEE75C},
		{name: "info", embed: f.Info("a", "b"), want: 0x5865F2},
		{name: "unknown type", embed: f.Create("other", "a", "b", EmbedOptions{}), want: 0x5865F2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.embed.Color)
			require.Equal(t, "2024-01-02T03:04:05Z", tt.embed.Timestamp)
		})
	}
}

func TestFormatterEmptyPaletteFallsBack(t *testing.T) {
	f := &Formatter{Palette: model.Palette{Success: "not-a-colour"}}
	assert.Equal(t, 0x57F287, f.Success("a", "b").Color)
}

func TestFormatterOptions(t *testing.T) {
	f := testFormatter()
	e := f.Create(TypeInfo, "Title", "Body", EmbedOptions{
		Fields:    []*discordgo.MessageEmbedField{{Name: "k", Value: "v", Inline: true}, nil},
		Footer:    "foot",
		Thumbnail: "https://example.com/t.png",
		Image:     "https://example.com/i.png",
	})

	assert.Equal(t, "Title", e.Title)
	assert.Equal(t, "Body", e.Description)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "foot", e.Footer.Text)
	assert.Equal(t, "https://example.com/t.png", e.Thumbnail.URL)
	assert.Equal(t, "https://example.com/i.png", e.Image.URL)

	plain := f.Info("t", "d")
	assert.Nil(t, plain.Footer)
	assert.Nil(t, plain.Image)
	assert.Empty(t, plain.Fields)
}

func TestButtonRow(t *testing.T) {
	row := ButtonRow(
		Button{CustomID: "ticket_claim", Label: "Claim", Style: discordgo.SuccessButton, Emoji: "🙋"},
		Button{Label: "Docs", URL: "https://example.com"},
	)
	require.Len(t, row.Components, 2)

	claim := row.Components[0].(discordgo.Button)
	assert.Equal(t, "ticket_claim", claim.CustomID)
	assert.Equal(t, "🙋", claim.Emoji.Name)

	link := row.Components[1].(discordgo.Button)
	assert.Equal(t, discordgo.LinkButton, link.Style)
	assert.Empty(t, link.CustomID)
}

func TestEmbedDataRoundTrip(t *testing.T) {
	f := testFormatter()
	in := model.EmbedData{
		Title:       "Rules",
		Description: "Be nice",
		Color:       "#FF0000",
		Footer:      &model.EmbedFooter{Text: "mods"},
		Image:       &model.EmbedImage{URL: "https://example.com/x.png"},
	}

	embed := f.EmbedFromData(in)
	assert.Equal(t, 0xFF0000, embed.Color)

	out := DataFromEmbed(embed)
	assert.Equal(t, in, out)
}

func TestEmbedFromDataShortHex(t *testing.T) {
	f := testFormatter()
	assert.Equal(t, 0xFFAA00, f.EmbedFromData(model.EmbedData{Color: "#FA0"}).Color)
	assert.Equal(t, 0x5865F2, f.EmbedFromData(model.EmbedData{}).Color)
}
