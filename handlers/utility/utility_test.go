package utility

import (
	"strings"
	"testing"
	"time"

	"community-bot/commands"
	"community-bot/handlers/router"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureName(t *testing.T) {
	assert.Equal(t, "Animated Icon", featureName("ANIMATED_ICON"))
	assert.Equal(t, "Community", featureName("COMMUNITY"))
}

func TestCountChannels(t *testing.T) {
	c := countChannels([]*discordgo.Channel{
		{Type: discordgo.ChannelTypeGuildText},
		{Type: discordgo.ChannelTypeGuildText},
		{Type: discordgo.ChannelTypeGuildVoice},
		{Type: discordgo.ChannelTypeGuildCategory},
		{Type: discordgo.ChannelTypeGuildForum},
	})
	assert.Equal(t, channelCounts{Total: 5, Text: 2, Voice: 1, Categories: 1}, c)
}

func TestMemberRoles(t *testing.T) {
	guildRoles := []*discordgo.Role{
		{ID: "guild", Position: 0},
		{ID: "low", Position: 1, Color: 0x00ff00},
		{ID: "plain", Position: 4},
		{ID: "high", Position: 3, Color: 0xff0000},
	}
	roles := memberRoles(guildRoles, []string{"guild", "low", "plain", "high"}, "guild")
	require.Len(t, roles, 3)
	assert.Equal(t, []string{"plain", "high", "low"}, []string{roles[0].ID, roles[1].ID, roles[2].ID})
	assert.Equal(t, 0xff0000, displayColor(roles))
	assert.Equal(t, 0, displayColor(nil))
}

func TestAvatarURLs(t *testing.T) {
	png, others := avatarURLs(&discordgo.User{ID: "1", Avatar: "abc"})
	assert.Equal(t, discordgo.EndpointCDN+"avatars/1/abc.png?size=1024", png)
	assert.Equal(t, discordgo.EndpointCDN+"avatars/1/abc.jpg?size=1024", others["JPG"])

	_, others = avatarURLs(&discordgo.User{ID: "1"})
	assert.Nil(t, others)
}

func TestActivityText(t *testing.T) {
	assert.Equal(t, "Playing chess", activityText(&discordgo.Activity{Type: discordgo.ActivityTypeGame, Name: "chess"}))
	assert.Equal(t, "Listening to radio", activityText(&discordgo.Activity{Type: discordgo.ActivityTypeListening, Name: "radio"}))
	assert.Equal(t, "Custom Status", activityText(&discordgo.Activity{Type: discordgo.ActivityTypeCustom, Name: "Custom Status"}))
}

func TestCommandHelp(t *testing.T) {
	f := utils.NewFormatter(utils.DefaultPalette)
	entry, ok := commands.Lookup("warn")
	require.True(t, ok)

	embed := commandHelp(f, entry.Command)
	assert.Equal(t, "Command: /warn", embed.Title)
	require.Len(t, embed.Fields, 1)
	assert.Contains(t, embed.Fields[0].Value, "**/warn add**")
	assert.Contains(t, embed.Fields[0].Value, "**/warn clear**")

	entry, _ = commands.Lookup("ban")
	embed = commandHelp(f, entry.Command)
	assert.Contains(t, embed.Fields[0].Value, "**user** - The user to ban (Required)")
}

func TestCategoryHelp(t *testing.T) {
	f := utils.NewFormatter(utils.DefaultPalette)
	embed := categoryHelp(f, commands.CategoryFun)
	assert.Equal(t, "Fun Commands", embed.Title)
	assert.True(t, strings.Contains(embed.Fields[0].Value, "**/coinflip**"))

	embed = categoryHelp(f, "nope")
	assert.Equal(t, "No commands found in this category.", embed.Fields[0].Value)
}

func TestCategorySelectRoutes(t *testing.T) {
	menu := categorySelectRow().Components[0].(discordgo.SelectMenu)
	assert.Len(t, menu.Options, len(commands.Categories))

	id, ok := router.Parse(menu.CustomID)
	require.True(t, ok)
	assert.Equal(t, router.ID{Domain: "utility", Action: "help", Args: []string{"category"}}, id)
}

func TestSystemFields(t *testing.T) {
	fields := systemFields(systemStats{
		Backend:  "sqlite",
		Degraded: true,
		Uptime:   90 * time.Minute,
		CPUCount: 4,
	})
	values := map[string]string{}
	for _, f := range fields {
		values[f.Name] = f.Value
	}
	assert.Equal(t, "sqlite (degraded)", values["🗃️ Storage"])
	assert.Equal(t, "1h 30m", values["🕒 Uptime"])
	assert.Equal(t, "4", values["🔼 CPUs"])
	assert.Equal(t, "Unknown", values["💻 OS"])
}
