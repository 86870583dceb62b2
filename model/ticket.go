package model

import "time"

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// Ticket log actions.
const (
	ActionCreate     = "create"
	ActionClose      = "close"
	ActionClaim      = "claim"
	ActionAddUser    = "add_user"
	ActionRemoveUser = "remove_user"
	ActionRename     = "rename"
	ActionCategory   = "category"
)

// TicketMessage is one transcript line captured from a ticket channel.
type TicketMessage struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Attachments []string  `json:"attachments,omitempty"`
}

// Ticket is a support request bound to a single channel.
type Ticket struct {
	ID           string
	ChannelID    string
	GuildID      string
	UserID       string
	Type         string
	Status       TicketStatus
	ClaimedBy    string
	ClosedBy     string
	ClosedAt     *time.Time
	CloseReason  string
	Name         string
	Participants []string
	Messages     []TicketMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Version is bumped on every successful update and used for conditional writes.
	Version int
}

// IsOpen reports whether the ticket still accepts participant and claim changes.
func (t *Ticket) IsOpen() bool {
	return t.Status == TicketOpen
}

// HasParticipant reports whether userID is a member of the ticket.
func (t *Ticket) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	c := *t
	c.Participants = append([]string(nil), t.Participants...)
	c.Messages = make([]TicketMessage, len(t.Messages))
	for i, m := range t.Messages {
		m.Attachments = append([]string(nil), m.Attachments...)
		c.Messages[i] = m
	}
	if t.ClosedAt != nil {
		at := *t.ClosedAt
		c.ClosedAt = &at
	}
	return &c
}

// TicketType is a selectable kind of ticket shown on the panel.
type TicketType struct {
	Label string `json:"label" mapstructure:"label"`
	Emoji string `json:"emoji" mapstructure:"emoji"`
}

// TicketSettings is the per-guild ticket configuration.
type TicketSettings struct {
	GuildID        string
	CategoryID     string
	StaffRoleIDs   []string
	LogsChannel    string
	TicketTypes    []TicketType
	WelcomeMessage string
	PanelChannelID string
	PanelMessageID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a deep copy.
func (s *TicketSettings) Clone() *TicketSettings {
	if s == nil {
		return nil
	}
	c := *s
	c.StaffRoleIDs = append([]string(nil), s.StaffRoleIDs...)
	c.TicketTypes = append([]TicketType(nil), s.TicketTypes...)
	return &c
}

// TicketLogEntry is an append-only audit record of a ticket transition.
type TicketLogEntry struct {
	ID        string
	GuildID   string
	ChannelID string
	TicketID  string
	Action    string
	ActorID   string
	Detail    string
	CreatedAt time.Time
}
