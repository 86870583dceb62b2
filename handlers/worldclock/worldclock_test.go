package worldclock

import (
	"testing"
	"time"

	"community-bot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	z, loc, err := Resolve("est")
	require.NoError(t, err)
	assert.Equal(t, "EST", z.Code)
	assert.Equal(t, "America/New_York", loc.String())

	z, loc, err = Resolve("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", z.Code)
	assert.Equal(t, "Europe/Berlin", loc.String())

	for _, bad := range []string{"", "local", "Mars/Olympus"} {
		_, _, err = Resolve(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatTime(t *testing.T) {
	_, loc, err := Resolve("JST")
	require.NoError(t, err)
	now := time.Date(2024, 1, 15, 23, 30, 5, 0, time.UTC)
	assert.Equal(t, "Tuesday, January 16, 2024 at 08:30:05 AM", FormatTime(now, loc))
}

func TestSuggest(t *testing.T) {
	all := Suggest("")
	assert.Len(t, all, len(CommonZones))

	got := Suggest("europe")
	var codes []string
	for _, c := range got {
		codes = append(codes, c.Value.(string))
	}
	assert.Equal(t, []string{"GMT", "CET", "EET", "MSK"}, codes)
	assert.Equal(t, "GMT (Europe/London)", got[0].Name)
}

func TestPresetsLoad(t *testing.T) {
	for name, zones := range Presets {
		for _, z := range zones {
			_, err := time.LoadLocation(z.Location)
			assert.NoError(t, err, "%s/%s", name, z.Code)
		}
	}
	var apacCST Zone
	for _, z := range Presets["apac"] {
		if z.Code == "CST" {
			apacCST = z
		}
	}
	assert.Equal(t, "Asia/Shanghai", apacCST.Location)
}

func TestClockEmbed(t *testing.T) {
	f := utils.NewFormatter(utils.DefaultPalette)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	embed := clockEmbed(f, []Zone{{Code: "UTC", Label: "Universal Time", Location: "UTC"}, {Code: "BAD", Location: "Nowhere/Place"}}, now)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Universal Time", embed.Fields[0].Name)
	assert.Equal(t, "Monday, January 15, 2024 at 12:00:00 PM", embed.Fields[0].Value)
	assert.Equal(t, "BAD", embed.Fields[1].Name)
	assert.Equal(t, "Invalid timezone", embed.Fields[1].Value)
}

func TestSelectedZones(t *testing.T) {
	zones := selectedZones([]string{"PST", "nope", "IST"})
	require.Len(t, zones, 2)
	assert.Equal(t, "America/Los_Angeles", zones[0].Location)
	assert.Equal(t, "Asia/Kolkata", zones[1].Location)
}

func TestListEmbedChunks(t *testing.T) {
	embed := listEmbed(utils.NewFormatter(utils.DefaultPalette))
	// 16 zones in chunks of five plus the trailing note
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "Timezones (4)", embed.Fields[3].Name)
	assert.Equal(t, "`NZST` - Pacific/Auckland", embed.Fields[3].Value)
}
