package fun

import (
	"fmt"
	"strings"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	figure "github.com/common-nighthawk/go-figure"
)

const (
	maxASCIIInput = 20
	// a code block adds 8 characters around the art
	maxASCIIArt = 1992
)

var asciiFonts = map[string]bool{
	"standard": true,
	"shadow":   true,
	"small":    true,
	"big":      true,
	"3-d":      true,
	"doom":     true,
	"graffiti": true,
	"starwars": true,
}

// renderASCII draws text in font. Characters the font lacks are rendered as "?".
func renderASCII(text, font string) (art string, err error) {
	if !asciiFonts[font] {
		return "", fmt.Errorf("unknown font %q", font)
	}
	// go-figure panics when a bundled font cannot be loaded
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to render font %q: %v", font, r)
		}
	}()
	art = figure.NewFigure(text, font, false).String()
	return strings.TrimRight(art, "\n "), nil
}

func handleASCII(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	text := strings.TrimSpace(opts.String("text", ""))
	font := opts.String("font", "standard")

	switch n := len([]rune(text)); {
	case n == 0:
		return utils.NewValidationError("empty_text", "Empty Text", "Please provide some text to convert.")
	case n > maxASCIIInput:
		return utils.NewValidationError("text_too_long", "Text Too Long", fmt.Sprintf("Please provide a shorter text (maximum %d characters).", maxASCIIInput))
	}

	art, err := renderASCII(text, font)
	if err != nil {
		return utils.NewValidationError("ascii_failed", "Error", "Failed to generate ASCII art.")
	}
	if len(art) > maxASCIIArt {
		return utils.NewValidationError("ascii_too_large", "Result Too Large", "The generated ASCII art is too large to display.")
	}
	return utils.RespondText(s, i, "```\n"+art+"\n```", false)
}
