package utils

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// PageBounds clamps page (1-based) to the pages spanned by total items and returns the item
// range of that page together with the page count.
func PageBounds(total, perPage, page int) (start, end, clamped, pages int) {
	pages = (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	clamped = min(max(page, 1), pages)
	start = (clamped - 1) * perPage
	end = min(start+perPage, total)
	return start, end, clamped, pages
}

// CreatePaginationComponents creates previous/next buttons. Each custom id is the prefix,
// the args and the target page joined by underscores, so the router hands the page back as
// the last arg. It returns nil when everything fits on one page.
func CreatePaginationComponents(currentPage, totalPages int, customIDPrefix string, args ...string) []discordgo.MessageComponent {
	if totalPages <= 1 {
		return nil
	}
	id := func(page int) string {
		parts := append([]string{customIDPrefix}, args...)
		return strings.Join(append(parts, fmt.Sprint(page)), "_")
	}
	return []discordgo.MessageComponent{
		ButtonRow(
			Button{
				CustomID: id(currentPage - 1),
				Label:    "Previous",
				Emoji:    "◀️",
				Style:    discordgo.SecondaryButton,
				Disabled: currentPage <= 1,
			},
			Button{
				CustomID: "noop_page_" + fmt.Sprint(currentPage),
				Label:    fmt.Sprintf("%d/%d", currentPage, totalPages),
				Style:    discordgo.SecondaryButton,
				Disabled: true,
			},
			Button{
				CustomID: id(currentPage + 1),
				Label:    "Next",
				Emoji:    "▶️",
				Style:    discordgo.SecondaryButton,
				Disabled: currentPage >= totalPages,
			},
		),
	}
}
