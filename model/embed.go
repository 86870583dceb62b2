package model

import "time"

type EmbedFooter struct {
	Text string `json:"text" mapstructure:"text"`
}

type EmbedImage struct {
	URL string `json:"url" mapstructure:"url"`
}

// EmbedData is an authored embed payload. Every field is optional.
type EmbedData struct {
	Title       string       `json:"title,omitempty" mapstructure:"title"`
	Description string       `json:"description,omitempty" mapstructure:"description"`
	Color       string       `json:"color,omitempty" mapstructure:"color"`
	Footer      *EmbedFooter `json:"footer,omitempty" mapstructure:"footer"`
	Image       *EmbedImage  `json:"image,omitempty" mapstructure:"image"`
	Timestamp   string       `json:"timestamp,omitempty" mapstructure:"timestamp"`
}

// Clone returns a deep copy.
func (d EmbedData) Clone() EmbedData {
	c := d
	if d.Footer != nil {
		f := *d.Footer
		c.Footer = &f
	}
	if d.Image != nil {
		img := *d.Image
		c.Image = &img
	}
	return c
}

// EmbedTemplate is a named, reusable embed scoped to a guild.
type EmbedTemplate struct {
	ID        string
	GuildID   string
	Name      string
	Data      EmbedData
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SentEmbed records an embed the bot posted so it can be edited or deleted later.
type SentEmbed struct {
	MessageID string
	ChannelID string
	GuildID   string
	Data      EmbedData
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmbedSession is the embed a user is currently authoring.
type EmbedSession struct {
	UserID    string    `json:"user_id"`
	GuildID   string    `json:"guild_id"`
	Data      EmbedData `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}
