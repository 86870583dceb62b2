package fun

import (
	"fmt"
	"strings"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// shipName joins the first half of one name with the second half of the other.
func shipName(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	return string(ra[:(len(ra)+1)/2]) + string(rb[len(rb)/2:])
}

// compatibility is stable for a pair of ids in a given order.
func compatibility(id1, id2 string) int {
	sum := 0
	for _, c := range id1 + id2 {
		sum += int(c)
	}
	return sum % 101
}

func verdict(pct int) string {
	switch {
	case pct < 10:
		return "Yikes! There's almost nothing here..."
	case pct < 30:
		return "Not great... maybe just stay friends?"
	case pct < 50:
		return "There's potential, but it'll take work!"
	case pct < 70:
		return "Pretty good match! You two should hang out more."
	case pct < 90:
		return "Great match! You two are meant for each other!"
	}
	return "Perfect match! When's the wedding?"
}

func heartBar(pct int) string {
	const length = 20
	filled := (pct*length + 50) / 100
	return strings.Repeat("❤️", filled) + strings.Repeat("🖤", length-filled)
}

func handleShip(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	u1, u2 := opts.User(s, "user1"), opts.User(s, "user2")
	if u1 == nil || u2 == nil {
		return utils.NewValidationError("missing_user", "Missing User", "Please choose two users to ship.")
	}
	pct := compatibility(u1.ID, u2.ID)

	t := utils.TypeSuccess
	switch {
	case pct < 30:
		t = utils.TypeError
	case pct < 70:
		t = utils.TypeWarning
	}
	embed := b.Formatter.Create(t, "💘 Shipping Calculator 💘",
		fmt.Sprintf("Shipping **%s** with **%s**", u1.Username, u2.Username),
		utils.EmbedOptions{
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Ship Name", Value: "**" + shipName(u1.Username, u2.Username) + "**"},
				{Name: "Compatibility", Value: fmt.Sprintf("%d%%", pct), Inline: true},
				{Name: "Match Rating", Value: heartBar(pct)},
				{Name: "Verdict", Value: verdict(pct)},
			},
			Footer: "Ship with another user to find your perfect match!",
		})
	return utils.RespondEmbed(s, i, false, embed)
}

var rpsChoices = []string{"rock", "paper", "scissors"}

var rpsEmoji = map[string]string{
	"rock":     "🪨",
	"paper":    "📄",
	"scissors": "✂️",
}

// beats maps a choice to the choice it defeats.
var beats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

type rpsOutcome int

const (
	rpsTie rpsOutcome = iota
	rpsWin
	rpsLoss
)

func playRPS(user, bot string) rpsOutcome {
	switch {
	case user == bot:
		return rpsTie
	case beats[user] == bot:
		return rpsWin
	}
	return rpsLoss
}

func choiceLabel(c string) string {
	return rpsEmoji[c] + " " + strings.ToUpper(c[:1]) + c[1:]
}

func rpsRow(token string) discordgo.ActionsRow {
	buttons := make([]utils.Button, 0, len(rpsChoices))
	for _, c := range rpsChoices {
		buttons = append(buttons, utils.Button{
			CustomID: fmt.Sprintf("fun_rps_%s_%s", c, token),
			Label:    strings.ToUpper(c[:1]) + c[1:],
			Emoji:    rpsEmoji[c],
			Style:    discordgo.PrimaryButton,
		})
	}
	return utils.ButtonRow(buttons...)
}

func handleRPS(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	game := b.Pending.Register(utils.InvokerID(i), nil, func(*utils.PendingAction) {
		expired := b.Formatter.Error("Game Expired", "You took too long to make a choice.")
		if err := utils.EditEmbed(s, i, expired, []discordgo.MessageComponent{}...); err != nil {
			b.Logger.Debug("failed to expire rps game", zap.Error(err))
		}
	})
	embed := b.Formatter.Create("", "Rock Paper Scissors", "Choose your move!", utils.EmbedOptions{
		Footer: fmt.Sprintf("Game will expire in %s", utils.FormatDuration(b.Config.ConfirmTimeout)),
	})
	if err := utils.RespondEmbed(s, i, false, embed, rpsRow(game.Token)); err != nil {
		b.Pending.Resolve(game.Token)
		return utils.NewCollaboratorError("Error", "start the game", err)
	}
	return nil
}

// handleRPSButton serves fun_rps_<choice>_<token>.
func handleRPSButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, args []string) error {
	if len(args) < 2 {
		return nil
	}
	choice, token := args[0], args[1]
	if _, ok := beats[choice]; !ok {
		return nil
	}
	if g := b.Pending.Peek(token); g != nil && g.OwnerID != utils.InvokerID(i) {
		return utils.NewValidationError("not_owner", "Not Your Game", "Start your own game with `/rps`.")
	}
	if b.Pending.Resolve(token) == nil {
		return utils.NewValidationError("game_expired", "Game Expired", "You took too long to make a choice.")
	}

	botChoice := rpsChoices[newRand().Intn(len(rpsChoices))]
	t, result := utils.TypeWarning, "It's a tie!"
	switch playRPS(choice, botChoice) {
	case rpsWin:
		t, result = utils.TypeSuccess, "You win!"
	case rpsLoss:
		t, result = utils.TypeError, "I win!"
	}
	embed := b.Formatter.Create(t, "Rock Paper Scissors Result", result, utils.EmbedOptions{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Choice", Value: choiceLabel(choice), Inline: true},
			{Name: "My Choice", Value: choiceLabel(botChoice), Inline: true},
		},
		Footer: "Thanks for playing!",
	})
	return utils.UpdateMessage(s, i, embed)
}
