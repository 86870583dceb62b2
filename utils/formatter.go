package utils

import (
	"time"

	"community-bot/model"

	"github.com/bwmarrin/discordgo"
)

// ResponseType selects the colour of a response embed.
type ResponseType string

const (
	TypeSuccess ResponseType = "success"
	TypeError   ResponseType = "error"
	TypeWarning ResponseType = "warning"
	TypeInfo    ResponseType = "info"
)

// DefaultPalette is used when the configuration leaves a colour empty.
var DefaultPalette = model.Palette{
	Primary: "#5865F2",
	Success: "#57F287",
	Warning: "#FEE75C",
	Error:   "#ED4245",
	Info:    "#5865F2",
}

// EmbedOptions are the optional parts of a response embed.
type EmbedOptions struct {
	Fields    []*discordgo.MessageEmbedField
	Footer    string
	Thumbnail string
	Image     string
	Author    *discordgo.MessageEmbedAuthor
}

// Button describes one button of a ButtonRow.
type Button struct {
	CustomID string
	Label    string
	Style    discordgo.ButtonStyle
	Emoji    string
	URL      string
	Disabled bool
}

// Formatter builds the standard response embeds. It holds no state besides its palette and clock.
type Formatter struct {
	Palette model.Palette
	Now     func() time.Time
}

func NewFormatter(p model.Palette) *Formatter {
	return &Formatter{Palette: p, Now: time.Now}
}

func (f *Formatter) color(t ResponseType) int {
	primary := ParseHexColor(f.Palette.Primary, ParseHexColor(DefaultPalette.Primary, 0))
	var hex, def string
	switch t {
	case TypeSuccess:
		hex, def = f.Palette.Success, DefaultPalette.Success
	case TypeError:
		hex, def = f.Palette.Error, DefaultPalette.Error
	case TypeWarning:
		hex, def = f.Palette.Warning, DefaultPalette.Warning
	case TypeInfo:
		hex, def = f.Palette.Info, DefaultPalette.Info
	default:
		return primary
	}
	return ParseHexColor(hex, ParseHexColor(def, primary))
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Create builds an embed of the given type. Unknown types use the primary colour.
func (f *Formatter) Create(t ResponseType, title, description string, opts EmbedOptions) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       f.color(t),
		Timestamp:   f.now().Format(time.RFC3339),
		Author:      opts.Author,
	}
	for _, field := range opts.Fields {
		if field != nil {
			embed.Fields = append(embed.Fields, field)
		}
	}
	if opts.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: opts.Footer}
	}
	if opts.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: opts.Thumbnail}
	}
	if opts.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: opts.Image}
	}
	return embed
}

func (f *Formatter) Success(title, description string, opts ...EmbedOptions) *discordgo.MessageEmbed {
	return f.Create(TypeSuccess, title, description, first(opts))
}

func (f *Formatter) Error(title, description string, opts ...EmbedOptions) *discordgo.MessageEmbed {
	return f.Create(TypeError, title, description, first(opts))
}

func (f *Formatter) Info(title, description string, opts ...EmbedOptions) *discordgo.MessageEmbed {
	return f.Create(TypeInfo, title, description, first(opts))
}

func (f *Formatter) Warning(title, description string, opts ...EmbedOptions) *discordgo.MessageEmbed {
	return f.Create(TypeWarning, title, description, first(opts))
}

func first(opts []EmbedOptions) EmbedOptions {
	if len(opts) == 0 {
		return EmbedOptions{}
	}
	return opts[0]
}

// ButtonRow lays the buttons out in a single action row. Link buttons carry a URL and no custom id.
func ButtonRow(buttons ...Button) discordgo.ActionsRow {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		btn := discordgo.Button{
			Label:    b.Label,
			Style:    b.Style,
			Disabled: b.Disabled,
		}
		if b.URL != "" {
			btn.Style = discordgo.LinkButton
			btn.URL = b.URL
		} else {
			btn.CustomID = b.CustomID
		}
		if b.Emoji != "" {
			btn.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
		}
		row.Components = append(row.Components, btn)
	}
	return row
}

// EmbedFromData renders an authored payload. An invalid colour falls back to the primary colour.
func (f *Formatter) EmbedFromData(d model.EmbedData) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       d.Title,
		Description: d.Description,
		Color:       ParseHexColor(d.Color, f.color("")),
		Timestamp:   d.Timestamp,
	}
	if d.Footer != nil && d.Footer.Text != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: d.Footer.Text}
	}
	if d.Image != nil && d.Image.URL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: d.Image.URL}
	}
	return embed
}

// DataFromEmbed extracts the authored payload from a message embed.
func DataFromEmbed(e *discordgo.MessageEmbed) model.EmbedData {
	if e == nil {
		return model.EmbedData{}
	}
	d := model.EmbedData{
		Title:       e.Title,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
	if e.Color != 0 {
		d.Color = FormatHexColor(e.Color)
	}
	if e.Footer != nil && e.Footer.Text != "" {
		d.Footer = &model.EmbedFooter{Text: e.Footer.Text}
	}
	if e.Image != nil && e.Image.URL != "" {
		d.Image = &model.EmbedImage{URL: e.Image.URL}
	}
	return d
}
