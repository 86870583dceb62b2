package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsHexColor reports whether s is a #RGB or #RRGGBB colour.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ParseHexColor parses a hex color string (like "#FACF24" or "#FC2") into an integer for Discord embeds.
// Returns fallback if parsing fails.
func ParseHexColor(hexColor string, fallback int) int {
	if hexColor == "" {
		return fallback
	}

	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) == 3 {
		hexColor = string([]byte{hexColor[0], hexColor[0], hexColor[1], hexColor[1], hexColor[2], hexColor[2]})
	}

	colorInt, err := strconv.ParseInt(hexColor, 16, 64)
	if err != nil || colorInt > 0xFFFFFF || colorInt < 0 {
		return fallback
	}
	return int(colorInt)
}

// FormatHexColor renders an embed colour as #RRGGBB.
func FormatHexColor(c int) string {
	return "#" + strings.ToUpper(strconv.FormatInt(int64(c)+0x1000000, 16)[1:])
}
