package fun

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode"

	"community-bot/bot"
	"community-bot/utils"
	"community-bot/utils/calc"

	"github.com/bwmarrin/discordgo"
)

var eightBallAnswers = []string{
	"It is certain.",
	"It is decidedly so.",
	"Without a doubt.",
	"Yes, definitely.",
	"You may rely on it.",
	"As I see it, yes.",
	"Most likely.",
	"Outlook good.",
	"Yes.",
	"Signs point to yes.",

	"Reply hazy, try again.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Concentrate and ask again.",

	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

var inviteLink = regexp.MustCompile(`(?i)(discord\.(gg|io|me|li)|discordapp\.com/invite|discord\.com/invite)`)

func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

func handleMath(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	expr := opts.String("expression", "")
	v, err := calc.Eval(expr)
	switch {
	case errors.Is(err, calc.ErrEmptyExpression):
		return utils.NewValidationError("empty_expression", "Empty Expression", "Please provide a math expression to evaluate.")
	case err != nil:
		return utils.NewValidationError("invalid_expression", "Invalid Expression", "Could not evaluate the expression: "+err.Error())
	}
	return utils.RespondEmbed(s, i, false, b.Formatter.Success("🧮 Math Result",
		fmt.Sprintf("Expression: `%s`\nResult: `%s`", expr, calc.Format(v))))
}

func handleEightBall(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	answer := eightBallAnswers[newRand().Intn(len(eightBallAnswers))]
	embed := b.Formatter.Create("", "🎱 Magic 8-Ball", "", utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Question", Value: utils.Truncate(opts.String("question", ""), 1024)},
			{Name: "Answer", Value: answer},
		},
		Footer: "The 8-ball has spoken!",
	})
	return utils.RespondEmbed(s, i, false, embed)
}

func handleCoinFlip(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	side := "Tails"
	if newRand().Intn(2) == 0 {
		side = "Heads"
	}
	embed := b.Formatter.Create("", "💰 Coin Flip", fmt.Sprintf("You flipped a coin and got: **%s**!", side),
		utils.EmbedOptions{Footer: "Better luck next time!"})
	return utils.RespondEmbed(s, i, false, embed)
}

// reverse reverses by rune so multi-byte characters survive.
func reverse(text string) string {
	r := []rune(text)
	for a, z := 0, len(r)-1; a < z; a, z = a+1, z-1 {
		r[a], r[z] = r[z], r[a]
	}
	return string(r)
}

// mock randomises the case of every letter, leaning towards lower case.
func mock(text string, rng *rand.Rand) string {
	var sb strings.Builder
	for _, c := range text {
		if rng.Float64() > 0.4 {
			sb.WriteRune(unicode.ToLower(c))
		} else {
			sb.WriteRune(unicode.ToUpper(c))
		}
	}
	return sb.String()
}

func respondPlain(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			AllowedMentions: noMentions(),
		},
	})
}

func handleReverse(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	text := opts.String("text", "")
	if strings.TrimSpace(text) == "" {
		return utils.NewValidationError("empty_text", "Empty Text", "Please provide some text to reverse.")
	}
	return respondPlain(s, i, reverse(text))
}

func handleMock(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	text := opts.String("text", "")
	if strings.TrimSpace(text) == "" {
		return utils.NewValidationError("empty_text", "Empty Text", "Please provide some text to mock.")
	}
	return respondPlain(s, i, mock(text, newRand()))
}

// checkSay rejects mass mentions, over-long messages and, for non-administrators, invite links.
func checkSay(message string, admin bool) error {
	if strings.Contains(message, "@everyone") || strings.Contains(message, "@here") {
		return utils.NewValidationError("forbidden_mention", "Forbidden Mention", "You cannot use everyone/here mentions in say command.")
	}
	if !admin && inviteLink.MatchString(message) {
		return utils.NewValidationError("forbidden_content", "Forbidden Content", "You cannot include Discord invite links in say command.")
	}
	if len([]rune(message)) > 2000 {
		return utils.NewValidationError("message_too_long", "Message Too Long", "The message cannot exceed 2000 characters.")
	}
	return nil
}

func handleSay(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	message := opts.String("message", "")
	if err := checkSay(message, utils.HasPermission(i, discordgo.PermissionAdministrator)); err != nil {
		return err
	}
	_, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Content: message,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers, discordgo.AllowedMentionTypeRoles},
		},
	})
	if err != nil {
		return utils.NewCollaboratorError("Error", "send message", err)
	}
	confirmation := "Message sent!"
	if opts.Bool("ephemeral", true) {
		confirmation = "Your message has been sent!"
	}
	return utils.RespondText(s, i, confirmation, true)
}
