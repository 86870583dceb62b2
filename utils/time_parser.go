package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// MaxTimeout is the longest member timeout Discord accepts.
const MaxTimeout = 28 * 24 * time.Hour

var ErrInvalidDuration = errors.New("invalid duration")

// ParseDuration extends time.ParseDuration with days and weeks ("1d12h", "2w").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return 0, ErrInvalidDuration
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidDuration, s)
	}
	return d, nil
}

// ParseTimeout parses a mute duration and clamps it to MaxTimeout. clamped reports whether
// the value was shortened.
func ParseTimeout(s string) (d time.Duration, clamped bool, err error) {
	d, err = ParseDuration(s)
	if err != nil {
		return 0, false, err
	}
	if d > MaxTimeout {
		return MaxTimeout, true, nil
	}
	return d, false, nil
}

// FormatDuration renders d as "1d 2h 3m 4s", omitting zero units.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	var parts []string
	for _, p := range []struct {
		n    time.Duration
		unit string
	}{{days, "d"}, {hours, "h"}, {minutes, "m"}, {seconds, "s"}} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", p.n, p.unit))
		}
	}
	return strings.Join(parts, " ")
}
