package commands

import (
	"regexp"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commandName = regexp.MustCompile(`^[-_\p{L}\p{N}]{1,32}$`)

func TestGenerateCommandsAreValid(t *testing.T) {
	cmds := GenerateCommands()
	require.NotEmpty(t, cmds)

	seen := map[string]bool{}
	for _, c := range cmds {
		assert.Regexp(t, commandName, c.Name)
		assert.False(t, seen[c.Name], "duplicate command %s", c.Name)
		seen[c.Name] = true
		assert.NotEmpty(t, c.Description, c.Name)
		assert.LessOrEqual(t, len(c.Description), 100, c.Name)
		checkOptions(t, c.Name, c.Options)
	}
}

func checkOptions(t *testing.T, cmd string, opts []*discordgo.ApplicationCommandOption) {
	t.Helper()
	assert.LessOrEqual(t, len(opts), 25, cmd)
	seenOptional := false
	for _, o := range opts {
		assert.Regexp(t, commandName, o.Name, cmd)
		assert.NotEmpty(t, o.Description, "%s.%s", cmd, o.Name)
		assert.LessOrEqual(t, len(o.Description), 100, "%s.%s", cmd, o.Name)
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			checkOptions(t, cmd+" "+o.Name, o.Options)
			continue
		}
		// required options must come first
		if o.Required {
			assert.False(t, seenOptional, "%s.%s is required after an optional option", cmd, o.Name)
		} else {
			seenOptional = true
		}
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, CategoryFun, CategoryOf("8ball"))
	assert.Equal(t, CategoryModeration, CategoryOf("warn"))
	assert.Equal(t, CategoryUtility, CategoryOf("does-not-exist"))

	total := 0
	for _, c := range Categories {
		n := len(InCategory(c.Name))
		assert.NotZero(t, n, c.Name)
		total += n
	}
	assert.Equal(t, len(GenerateCommands()), total)
}
