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

type messageRow struct {
	ChannelID   string    `db:"channel_id"`
	MessageID   string    `db:"message_id"`
	AuthorID    string    `db:"author_id"`
	Author      string    `db:"author"`
	Content     string    `db:"content"`
	Attachments string    `db:"attachments"`
	SentAt      time.Time `db:"sent_at"`
}

// AppendMessage inserts a transcript row. The ticket row is only read, so appends never
// conflict with claim or close writes; on postgres the read takes a share lock so a
// concurrent close waits for the insert.
func (s *TicketStore) AppendMessage(ctx context.Context, channelID string, msg model.TicketMessage) (bool, error) {
	defer s.observe("ticket_messages", "append")()

	attachments, err := encodeJSON(nonNil(msg.Attachments))
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transcript transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT status FROM tickets WHERE channel_id = ?`
	if s.backend == database.BackendPostgres {
		query += ` FOR SHARE`
	}
	var status string
	err = tx.GetContext(ctx, &status, tx.Rebind(query), channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check ticket for channel %s: %w", channelID, err)
	}
	if model.TicketStatus(status) != model.TicketOpen {
		return false, nil
	}

	sentAt := msg.Timestamp
	if sentAt.IsZero() {
		sentAt = s.now()
	}
	row := &messageRow{
		ChannelID:   channelID,
		MessageID:   msg.ID,
		AuthorID:    msg.AuthorID,
		Author:      msg.Author,
		Content:     msg.Content,
		Attachments: attachments,
		SentAt:      sentAt.UTC(),
	}
	_, err = tx.NamedExecContext(ctx, `INSERT INTO ticket_messages (channel_id, message_id, author_id, author, content,
		attachments, sent_at) VALUES (:channel_id, :message_id, :author_id, :author, :content, :attachments, :sent_at)`, row)
	if err != nil {
		return false, fmt.Errorf("failed to append transcript line for channel %s: %w", channelID, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transcript line: %w", err)
	}
	return true, nil
}

func (s *TicketStore) messages(ctx context.Context, channelID string) ([]model.TicketMessage, error) {
	var rows []messageRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`SELECT channel_id, message_id, author_id, author, content,
		attachments, sent_at FROM ticket_messages WHERE channel_id = ? ORDER BY seq ASC`), channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript for channel %s: %w", channelID, err)
	}
	out := make([]model.TicketMessage, 0, len(rows))
	for _, r := range rows {
		m := model.TicketMessage{
			ID:        r.MessageID,
			AuthorID:  r.AuthorID,
			Author:    r.Author,
			Content:   r.Content,
			Timestamp: r.SentAt,
		}
		if err := decodeJSON(r.Attachments, &m.Attachments); err != nil {
			return nil, err
		}
		if len(m.Attachments) == 0 {
			m.Attachments = nil
		}
		out = append(out, m)
	}
	return out, nil
}
