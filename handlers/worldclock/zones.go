package worldclock

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/discordgo"
)

// Zone is a named time zone. Location is an IANA identifier.
type Zone struct {
	Code     string
	Label    string
	Location string
}

// CommonZones are the abbreviations accepted in place of an IANA identifier.
var CommonZones = []Zone{
	{"UTC", "Universal Time", "UTC"},
	{"EST", "Eastern Time", "America/New_York"},
	{"CST", "Central Time", "America/Chicago"},
	{"MST", "Mountain Time", "America/Denver"},
	{"PST", "Pacific Time", "America/Los_Angeles"},
	{"AKST", "Alaska Time", "America/Anchorage"},
	{"HST", "Hawaii Time", "Pacific/Honolulu"},
	{"GMT", "London", "Europe/London"},
	{"CET", "Central Europe", "Europe/Paris"},
	{"EET", "Eastern Europe", "Europe/Athens"},
	{"MSK", "Moscow", "Europe/Moscow"},
	{"IST", "India", "Asia/Kolkata"},
	{"ICT", "Thailand/Vietnam", "Asia/Bangkok"},
	{"JST", "Japan/Korea", "Asia/Tokyo"},
	{"AEST", "Australia Eastern", "Australia/Sydney"},
	{"NZST", "New Zealand", "Pacific/Auckland"},
}

// Presets group zones for /worldclock-multiple. Labels and locations override the common
// entry where an abbreviation is ambiguous.
var Presets = map[string][]Zone{
	"us": {
		{"EST", "Eastern Time", "America/New_York"},
		{"CST", "Central Time", "America/Chicago"},
		{"MST", "Mountain Time", "America/Denver"},
		{"PST", "Pacific Time", "America/Los_Angeles"},
		{"AKST", "Alaska Time", "America/Anchorage"},
		{"HST", "Hawaii Time", "Pacific/Honolulu"},
	},
	"global": {
		{"UTC", "Universal Time", "UTC"},
		{"EST", "Eastern Time (US)", "America/New_York"},
		{"PST", "Pacific Time (US)", "America/Los_Angeles"},
		{"GMT", "London", "Europe/London"},
		{"CET", "Central Europe", "Europe/Paris"},
		{"IST", "India", "Asia/Kolkata"},
		{"JST", "Japan/Korea", "Asia/Tokyo"},
		{"AEST", "Australia Eastern", "Australia/Sydney"},
	},
	"europe": {
		{"GMT", "London", "Europe/London"},
		{"CET", "Paris/Berlin/Rome", "Europe/Paris"},
		{"EET", "Eastern Europe", "Europe/Athens"},
		{"MSK", "Moscow", "Europe/Moscow"},
	},
	"apac": {
		{"IST", "India", "Asia/Kolkata"},
		{"ICT", "Thailand/Vietnam", "Asia/Bangkok"},
		{"CST", "China/Taiwan", "Asia/Shanghai"},
		{"JST", "Japan/Korea", "Asia/Tokyo"},
		{"AEST", "Sydney/Melbourne", "Australia/Sydney"},
		{"NZST", "New Zealand", "Pacific/Auckland"},
	},
}

const timeLayout = "Monday, January 2, 2006 at 03:04:05 PM"

// Resolve maps an abbreviation or an IANA identifier to a zone.
func Resolve(input string) (Zone, *time.Location, error) {
	input = strings.TrimSpace(input)
	for _, z := range CommonZones {
		if strings.EqualFold(z.Code, input) {
			loc, err := time.LoadLocation(z.Location)
			return z, loc, err
		}
	}
	if input == "" || strings.EqualFold(input, "local") {
		return Zone{}, nil, fmt.Errorf("unknown time zone %q", input)
	}
	loc, err := time.LoadLocation(input)
	if err != nil {
		return Zone{}, nil, err
	}
	return Zone{Code: input, Label: input, Location: input}, loc, nil
}

// FormatTime renders now in loc the way every clock embed shows it.
func FormatTime(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(timeLayout)
}

// Suggest returns autocomplete choices whose "CODE (Location)" name contains query.
func Suggest(query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToUpper(strings.TrimSpace(query))
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, z := range CommonZones {
		name := fmt.Sprintf("%s (%s)", z.Code, z.Location)
		if !strings.Contains(strings.ToUpper(name), query) {
			continue
		}
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: z.Code})
		if len(out) == 25 {
			break
		}
	}
	return out
}
