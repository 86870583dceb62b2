package ticketing

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const (
	namePrefix    = "ticket-"
	maxNameLength = 32
)

var (
	invalidNameChars     = regexp.MustCompile(`[^a-z0-9_-]`)
	invalidUsernameChars = regexp.MustCompile(`[^a-z0-9]`)
)

// SanitizeName turns user input into a ticket channel name: lowercase, only [a-z0-9_-],
// prefixed with "ticket-" and at most 32 characters. ok is false when nothing usable remains.
func SanitizeName(name string) (clean string, ok bool) {
	s := invalidNameChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
	s = strings.TrimPrefix(s, namePrefix)
	if strings.Trim(s, "-_") == "" {
		return "", false
	}
	s = namePrefix + s
	if len(s) > maxNameLength {
		s = s[:maxNameLength]
	}
	return s, true
}

// ChannelName builds the channel name of a new ticket, "ticket-<username>-<1000..9999>".
func ChannelName(username string, rng *rand.Rand) string {
	clean := invalidUsernameChars.ReplaceAllString(strings.ToLower(username), "")
	if clean == "" {
		clean = "user"
	}
	n := 1000 + rng.Intn(9000)
	return fmt.Sprintf("ticket-%s-%d", clean, n)
}
