package sqlstore

import (
	"context"
	"fmt"
	"time"

	"community-bot/model"

	"github.com/google/uuid"
)

// ticketLogRow mirrors model.TicketLogEntry field for field so the two convert directly.
type ticketLogRow struct {
	ID        string    `db:"id"`
	GuildID   string    `db:"guild_id"`
	ChannelID string    `db:"channel_id"`
	TicketID  string    `db:"ticket_id"`
	Action    string    `db:"action"`
	ActorID   string    `db:"actor_id"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

type TicketLogStore struct {
	store
}

func (s *TicketLogStore) Append(ctx context.Context, e *model.TicketLogEntry) (*model.TicketLogEntry, error) {
	defer s.observe("ticket_logs", "append")()

	rec := *e
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = s.utc()

	query := `INSERT INTO ticket_logs (id, guild_id, channel_id, ticket_id, action, actor_id, detail, created_at)
		VALUES (:id, :guild_id, :channel_id, :ticket_id, :action, :actor_id, :detail, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, query, ticketLogRow(rec)); err != nil {
		return nil, fmt.Errorf("failed to append ticket log: %w", err)
	}
	return &rec, nil
}

// List orders by the insertion sequence rather than created_at, so entries written within
// the same clock tick still come back newest first.
func (s *TicketLogStore) List(ctx context.Context, guildID string, limit int) ([]*model.TicketLogEntry, error) {
	defer s.observe("ticket_logs", "list")()

	query := `SELECT id, guild_id, channel_id, ticket_id, action, actor_id, detail, created_at
		FROM ticket_logs WHERE guild_id = ? ORDER BY seq DESC`
	args := []any{guildID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []ticketLogRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list ticket logs for guild %s: %w", guildID, err)
	}
	out := make([]*model.TicketLogEntry, 0, len(rows))
	for _, r := range rows {
		e := model.TicketLogEntry(r)
		out = append(out, &e)
	}
	return out, nil
}
