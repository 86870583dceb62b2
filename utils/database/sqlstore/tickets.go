package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"community-bot/model"
	"community-bot/utils/database"
)

type ticketRow struct {
	ChannelID    string       `db:"channel_id"`
	ID           string       `db:"id"`
	GuildID      string       `db:"guild_id"`
	UserID       string       `db:"user_id"`
	Type         string       `db:"type"`
	Status       string       `db:"status"`
	ClaimedBy    string       `db:"claimed_by"`
	ClosedBy     string       `db:"closed_by"`
	ClosedAt     sql.NullTime `db:"closed_at"`
	CloseReason  string       `db:"close_reason"`
	Name         string       `db:"ticket_name"`
	Participants string       `db:"participants"`
	Version      int          `db:"version"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

const ticketColumns = `channel_id, id, guild_id, user_id, type, status, claimed_by, closed_by, closed_at,
	close_reason, ticket_name, participants, version, created_at, updated_at`

func toTicketRow(t *model.Ticket) (*ticketRow, error) {
	participants, err := encodeJSON(nonNil(t.Participants))
	if err != nil {
		return nil, err
	}
	row := &ticketRow{
		ChannelID:    t.ChannelID,
		ID:           t.ID,
		GuildID:      t.GuildID,
		UserID:       t.UserID,
		Type:         t.Type,
		Status:       string(t.Status),
		ClaimedBy:    t.ClaimedBy,
		ClosedBy:     t.ClosedBy,
		CloseReason:  t.CloseReason,
		Name:         t.Name,
		Participants: participants,
		Version:      t.Version,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.ClosedAt != nil {
		row.ClosedAt = sql.NullTime{Time: t.ClosedAt.UTC(), Valid: true}
	}
	return row, nil
}

func (r *ticketRow) toModel() (*model.Ticket, error) {
	t := &model.Ticket{
		ID:          r.ID,
		ChannelID:   r.ChannelID,
		GuildID:     r.GuildID,
		UserID:      r.UserID,
		Type:        r.Type,
		Status:      model.TicketStatus(r.Status),
		ClaimedBy:   r.ClaimedBy,
		ClosedBy:    r.ClosedBy,
		CloseReason: r.CloseReason,
		Name:        r.Name,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ClosedAt.Valid {
		at := r.ClosedAt.Time
		t.ClosedAt = &at
	}
	if err := decodeJSON(r.Participants, &t.Participants); err != nil {
		return nil, err
	}
	return t, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type TicketStore struct {
	store
}

func (s *TicketStore) Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	defer s.observe("tickets", "create")()

	rec := t.Clone()
	if rec.Status == "" {
		rec.Status = model.TicketOpen
	}
	now := s.utc()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.Version = 1

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ticket transaction: %w", err)
	}
	defer tx.Rollback()

	if rec.ID == "" {
		var n int64
		query := tx.Rebind(`INSERT INTO ticket_counters (guild_id, value) VALUES (?, 1)
			ON CONFLICT (guild_id) DO UPDATE SET value = ticket_counters.value + 1
			RETURNING value`)
		if err := tx.QueryRowxContext(ctx, query, rec.GuildID).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to allocate ticket number for guild %s: %w", rec.GuildID, err)
		}
		rec.ID = fmt.Sprintf("ticket-%d", n)
	}

	row, err := toTicketRow(rec)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (:channel_id, :id, :guild_id, :user_id, :type, :status,
		:claimed_by, :closed_by, :closed_at, :close_reason, :ticket_name, :participants, :version,
		:created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("ticket for channel %s: %w", rec.ChannelID, database.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ticket: %w", err)
	}
	return rec, nil
}

func (s *TicketStore) Get(ctx context.Context, channelID string) (*model.Ticket, error) {
	defer s.observe("tickets", "get")()

	var row ticketRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+ticketColumns+` FROM tickets WHERE channel_id = ?`), channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket for channel %s: %w", channelID, err)
	}
	t, err := row.toModel()
	if err != nil {
		return nil, err
	}
	if t.Messages, err = s.messages(ctx, channelID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketStore) List(ctx context.Context, guildID string) ([]*model.Ticket, error) {
	defer s.observe("tickets", "list")()

	var rows []ticketRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`SELECT `+ticketColumns+` FROM tickets WHERE guild_id = ? ORDER BY created_at ASC`), guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for guild %s: %w", guildID, err)
	}
	out := make([]*model.Ticket, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *TicketStore) Update(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	defer s.observe("tickets", "update")()

	row, err := toTicketRow(t)
	if err != nil {
		return nil, err
	}
	row.UpdatedAt = s.utc()

	query := `UPDATE tickets SET type = :type, status = :status, claimed_by = :claimed_by, closed_by = :closed_by,
		closed_at = :closed_at, close_reason = :close_reason, ticket_name = :ticket_name,
		participants = :participants, updated_at = :updated_at, version = version + 1
		WHERE channel_id = :channel_id AND version = :version`
	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket %s: %w", t.ChannelID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected for ticket %s: %w", t.ChannelID, err)
	}

	cur, err := s.Get(ctx, t.ChannelID)
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 && cur != nil {
		return nil, fmt.Errorf("ticket %s at version %d: %w", t.ChannelID, t.Version, database.ErrConflict)
	}
	return cur, nil
}

func (s *TicketStore) Delete(ctx context.Context, channelID string) (bool, error) {
	defer s.observe("tickets", "delete")()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin ticket transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tickets WHERE channel_id = ?`), channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete ticket for channel %s: %w", channelID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for ticket %s: %w", channelID, err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM ticket_messages WHERE channel_id = ?`), channelID); err != nil {
		return false, fmt.Errorf("failed to delete transcript for channel %s: %w", channelID, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit ticket delete: %w", err)
	}
	return rowsAffected > 0, nil
}
