// Package ticketing implements the ticket state machine on top of the record stores.
//
// A ticket starts open and ends closed; there is no reopen. Every transition is a
// read, guard, conditional write loop: when the stored version moved on between read and
// write the ticket is re-read and the guards are evaluated again, so two staff members
// claiming at the same time produce exactly one claimant.
package ticketing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-bot/model"
	"community-bot/utils"
	"community-bot/utils/database"

	"go.uber.org/zap"
)

// Guard failure codes.
const (
	CodeNotTicket           = "not_ticket"
	CodeTicketClosed        = "ticket_closed"
	CodeAlreadyClaimed      = "already_claimed"
	CodeAlreadyClaimedSelf  = "already_claimed_self"
	CodeAlreadyAdded        = "already_added"
	CodeNotParticipant      = "not_participant"
	CodeCannotRemoveCreator = "cannot_remove_creator"
	CodeInvalidName         = "invalid_name"
)

const maxAttempts = 5

// ErrTooManyConflicts is returned when a mutation kept losing races.
var ErrTooManyConflicts = errors.New("ticket kept changing concurrently")

// Workflow applies ticket transitions and records them in the ticket log.
type Workflow struct {
	tickets  database.TicketStore
	logs     database.TicketLogStore
	settings database.SettingsStore
	defaults model.TicketDefaults
	logger   *zap.Logger
	now      func() time.Time
}

// NewWorkflow builds a workflow over stores. defaults fill in settings a guild left empty.
func NewWorkflow(stores *database.Stores, defaults model.TicketDefaults, logger *zap.Logger) *Workflow {
	return &Workflow{
		tickets:  stores.Tickets,
		logs:     stores.TicketLogs,
		settings: stores.Settings,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
	}
}

// OpenRequest describes a new ticket.
type OpenRequest struct {
	GuildID   string
	ChannelID string
	UserID    string
	Type      string
	Name      string
}

// Open records a new open ticket for an already created channel.
func (w *Workflow) Open(ctx context.Context, req OpenRequest) (*model.Ticket, error) {
	if req.Type == "" {
		req.Type = "General Support"
	}
	t, err := w.tickets.Create(ctx, &model.Ticket{
		ChannelID:    req.ChannelID,
		GuildID:      req.GuildID,
		UserID:       req.UserID,
		Type:         req.Type,
		Status:       model.TicketOpen,
		Name:         req.Name,
		Participants: []string{req.UserID},
	})
	if err != nil {
		return nil, utils.NewBackendError("create ticket", err)
	}
	w.appendLog(ctx, t, model.ActionCreate, req.UserID, "Ticket created: "+req.Type)
	return t, nil
}

// Get returns the ticket bound to channelID, or a not_ticket error.
func (w *Workflow) Get(ctx context.Context, channelID string) (*model.Ticket, error) {
	t, err := w.tickets.Get(ctx, channelID)
	if err != nil {
		return nil, utils.NewBackendError("load ticket", err)
	}
	if t == nil {
		return nil, errNotTicket()
	}
	return t, nil
}

// Lookup is Get without the not_ticket error; it returns nil for non-ticket channels.
func (w *Workflow) Lookup(ctx context.Context, channelID string) (*model.Ticket, error) {
	t, err := w.tickets.Get(ctx, channelID)
	if err != nil {
		return nil, utils.NewBackendError("load ticket", err)
	}
	return t, nil
}

func (w *Workflow) Claim(ctx context.Context, channelID, userID string) (*model.Ticket, error) {
	t, err := w.mutate(ctx, channelID, func(t *model.Ticket) error {
		if !t.IsOpen() {
			return guard(CodeTicketClosed, "Ticket Closed", "This ticket is closed and cannot be claimed.")
		}
		if t.ClaimedBy == userID {
			return guard(CodeAlreadyClaimedSelf, "Already Claimed", "You have already claimed this ticket.")
		}
		if t.ClaimedBy != "" {
			return guard(CodeAlreadyClaimed, "Already Claimed", fmt.Sprintf("This ticket is already claimed by <@%s>.", t.ClaimedBy))
		}
		t.ClaimedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.appendLog(ctx, t, model.ActionClaim, userID, fmt.Sprintf("Ticket claimed by <@%s>", userID))
	return t, nil
}

func (w *Workflow) Close(ctx context.Context, channelID, userID, reason string) (*model.Ticket, error) {
	t, err := w.mutate(ctx, channelID, func(t *model.Ticket) error {
		if !t.IsOpen() {
			return guard(CodeTicketClosed, "Ticket Already Closed", "This ticket is already closed.")
		}
		now := w.now().UTC()
		t.Status = model.TicketClosed
		t.ClosedBy = userID
		t.ClosedAt = &now
		t.CloseReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	detail := "Ticket closed"
	if reason != "" {
		detail += ": " + reason
	}
	w.appendLog(ctx, t, model.ActionClose, userID, detail)
	return t, nil
}

func (w *Workflow) AddParticipant(ctx context.Context, channelID, userID, actorID string) (*model.Ticket, error) {
	t, err := w.mutate(ctx, channelID, func(t *model.Ticket) error {
		if !t.IsOpen() {
			return guard(CodeTicketClosed, "Ticket Closed", "This ticket is closed. Cannot add users to closed tickets.")
		}
		if t.HasParticipant(userID) {
			return guard(CodeAlreadyAdded, "Already Added", "This user is already added to the ticket.")
		}
		t.Participants = append(t.Participants, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.appendLog(ctx, t, model.ActionAddUser, actorID, fmt.Sprintf("Added user <@%s> to ticket", userID))
	return t, nil
}

// RemoveParticipant rejects removing the creator in every state, before the closed guard.
func (w *Workflow) RemoveParticipant(ctx context.Context, channelID, userID, actorID string) (*model.Ticket, error) {
	t, err := w.mutate(ctx, channelID, func(t *model.Ticket) error {
		if userID == t.UserID {
			return guard(CodeCannotRemoveCreator, "Cannot Remove", "You cannot remove the ticket creator from the ticket.")
		}
		if !t.IsOpen() {
			return guard(CodeTicketClosed, "Ticket Closed", "This ticket is closed. Cannot remove users from closed tickets.")
		}
		idx := -1
		for i, p := range t.Participants {
			if p == userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return guard(CodeNotParticipant, "Not in Ticket", "This user is not in the ticket.")
		}
		t.Participants = append(t.Participants[:idx:idx], t.Participants[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.appendLog(ctx, t, model.ActionRemoveUser, actorID, fmt.Sprintf("Removed user <@%s> from ticket", userID))
	return t, nil
}

// Rename is allowed in any state. The stored name is the sanitized one.
func (w *Workflow) Rename(ctx context.Context, channelID, name, actorID string) (*model.Ticket, error) {
	clean, ok := SanitizeName(name)
	t, err := w.mutate(ctx, channelID, func(t *model.Ticket) error {
		if !ok {
			return guard(CodeInvalidName, "Invalid Name", "The ticket name must contain valid characters (alphanumeric, dashes, underscores).")
		}
		t.Name = clean
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.appendLog(ctx, t, model.ActionRename, actorID, "Ticket renamed to "+clean)
	return t, nil
}

// AppendMessage adds a transcript line to an open ticket. Messages in closed tickets and
// non-ticket channels are ignored; the returned bool reports whether the line was stored.
// Transcript lines are stored apart from the ticket record, so a burst of messages never
// races with claim or close.
func (w *Workflow) AppendMessage(ctx context.Context, channelID string, msg model.TicketMessage) (bool, error) {
	stored, err := w.tickets.AppendMessage(ctx, channelID, msg)
	if err != nil {
		return false, utils.NewBackendError("append transcript line", err)
	}
	return stored, nil
}

// Logs returns the newest ticket log entries of a guild.
func (w *Workflow) Logs(ctx context.Context, guildID string, limit int) ([]*model.TicketLogEntry, error) {
	entries, err := w.logs.List(ctx, guildID, limit)
	if err != nil {
		return nil, utils.NewBackendError("load ticket logs", err)
	}
	return entries, nil
}

// mutate runs apply against the latest stored ticket and writes the result conditionally.
func (w *Workflow) mutate(ctx context.Context, channelID string, apply func(t *model.Ticket) error) (*model.Ticket, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		cur, err := w.Get(ctx, channelID)
		if err != nil {
			return nil, err
		}
		next := cur.Clone()
		if err := apply(next); err != nil {
			return nil, err
		}

		saved, err := w.tickets.Update(ctx, next)
		switch {
		case errors.Is(err, database.ErrConflict):
			w.logger.Debug("ticket update conflict, retrying",
				zap.String("channel_id", channelID), zap.Int("attempt", attempt))
			continue
		case err != nil:
			return nil, utils.NewBackendError("update ticket", err)
		case saved == nil:
			// deleted between read and write
			return nil, errNotTicket()
		}
		return saved, nil
	}
	return nil, utils.NewBackendError("update ticket", ErrTooManyConflicts)
}

// appendLog is best effort: the transition already happened, so a failed audit write is
// only logged.
func (w *Workflow) appendLog(ctx context.Context, t *model.Ticket, action, actorID, detail string) {
	_, err := w.logs.Append(ctx, &model.TicketLogEntry{
		GuildID:   t.GuildID,
		ChannelID: t.ChannelID,
		TicketID:  t.ID,
		Action:    action,
		ActorID:   actorID,
		Detail:    detail,
	})
	if err != nil {
		w.logger.Error("failed to append ticket log",
			zap.String("guild_id", t.GuildID),
			zap.String("channel_id", t.ChannelID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func guard(code, title, message string) error {
	return utils.NewValidationError(code, title, message)
}

func errNotTicket() error {
	return guard(CodeNotTicket, "Not a Ticket", "This command can only be used in a ticket channel.")
}
