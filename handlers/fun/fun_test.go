package fun

import (
	"math/rand"
	"strings"
	"testing"

	"community-bot/handlers/router"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverse(t *testing.T) {
	assert.Equal(t, "olleh", reverse("hello"))
	assert.Equal(t, "🙂 éd", reverse("dé 🙂"))
	assert.Equal(t, "", reverse(""))
}

func TestMockKeepsLetters(t *testing.T) {
	in := "Hello, World! Ünïcode"
	out := mock(in, rand.New(rand.NewSource(1)))
	assert.Equal(t, strings.ToLower(in), strings.ToLower(out))
	assert.Equal(t, out, mock(in, rand.New(rand.NewSource(1))))
}

func TestCheckSay(t *testing.T) {
	assert.NoError(t, checkSay("hello <@123>", false))
	assert.True(t, utils.HasCode(checkSay("hi @everyone", true), "forbidden_mention"))
	assert.True(t, utils.HasCode(checkSay("ping @here", false), "forbidden_mention"))
	assert.True(t, utils.HasCode(checkSay("join discord.gg/abc", false), "forbidden_content"))
	assert.NoError(t, checkSay("join discord.gg/abc", true))
	assert.True(t, utils.HasCode(checkSay(strings.Repeat("a", 2001), true), "message_too_long"))
}

func TestShip(t *testing.T) {
	assert.Equal(t, "Alirlie", shipName("Alice", "Charlie"))
	assert.Equal(t, "Bob", shipName("Bo", "Bob"))

	pct := compatibility("111", "222")
	assert.Equal(t, int(3*'1'+3*'2')%101, pct)
	assert.Equal(t, pct, compatibility("111", "222"))
	assert.True(t, pct >= 0 && pct <= 100)

	assert.Equal(t, "Yikes! There's almost nothing here...", verdict(0))
	assert.Equal(t, "Perfect match! When's the wedding?", verdict(100))

	assert.Equal(t, strings.Repeat("❤️", 10)+strings.Repeat("🖤", 10), heartBar(50))
	assert.Equal(t, strings.Repeat("🖤", 20), heartBar(0))
}

func TestPlayRPS(t *testing.T) {
	assert.Equal(t, rpsTie, playRPS("rock", "rock"))
	assert.Equal(t, rpsWin, playRPS("rock", "scissors"))
	assert.Equal(t, rpsWin, playRPS("paper", "rock"))
	assert.Equal(t, rpsWin, playRPS("scissors", "paper"))
	assert.Equal(t, rpsLoss, playRPS("rock", "paper"))
	assert.Equal(t, "✂️ Scissors", choiceLabel("scissors"))
}

func TestRPSRowRoutes(t *testing.T) {
	row := rpsRow("tok12345")
	require.Len(t, row.Components, 3)
	id, ok := router.Parse(row.Components[1].(discordgo.Button).CustomID)
	require.True(t, ok)
	assert.Equal(t, router.ID{Domain: "fun", Action: "rps", Args: []string{"paper", "tok12345"}}, id)
}
