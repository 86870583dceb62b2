package utils

import (
	"regexp"
	"strings"
)

var (
	messageLinkRe = regexp.MustCompile(`^https://(?:(?:ptb|canary)\.)?discord(?:app)?\.com/channels/(\d+|@me)/(\d+)/(\d+)/?$`)
	snowflakeRe   = regexp.MustCompile(`^\d{15,21}$`)
)

// ParseMessageRef accepts a message id or a message link. A bare id resolves to
// defaultChannelID; a link carries its own channel.
func ParseMessageRef(input, defaultChannelID string) (channelID, messageID string, ok bool) {
	input = strings.TrimSpace(input)
	if m := messageLinkRe.FindStringSubmatch(input); m != nil {
		return m[2], m[3], true
	}
	if snowflakeRe.MatchString(input) {
		return defaultChannelID, input, true
	}
	return "", "", false
}
