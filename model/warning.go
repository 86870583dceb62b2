package model

import "time"

// Warning is a moderation warning issued to a guild member.
// ID is assigned by the store, increases monotonically and is never reused.
type Warning struct {
	ID        int64
	GuildID   string
	UserID    string
	IssuedBy  string
	Reason    string
	CreatedAt time.Time
}
