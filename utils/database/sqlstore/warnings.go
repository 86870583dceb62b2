package sqlstore

import (
	"context"
	"fmt"
	"time"

	"community-bot/model"
)

type warningRow struct {
	ID        int64     `db:"id"`
	GuildID   string    `db:"guild_id"`
	UserID    string    `db:"user_id"`
	IssuedBy  string    `db:"issued_by"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

type WarningStore struct {
	store
}

func (s *WarningStore) Add(ctx context.Context, w *model.Warning) (*model.Warning, error) {
	defer s.observe("warnings", "add")()

	rec := *w
	rec.CreatedAt = s.utc()

	// Both sqlite (3.35+) and postgres support RETURNING.
	query := s.db.Rebind(`INSERT INTO warnings (guild_id, user_id, issued_by, reason, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, query, rec.GuildID, rec.UserID, rec.IssuedBy, rec.Reason, rec.CreatedAt).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("failed to add warning: %w", err)
	}
	return &rec, nil
}

func (s *WarningStore) List(ctx context.Context, guildID, userID string) ([]*model.Warning, error) {
	defer s.observe("warnings", "list")()

	var rows []warningRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`SELECT id, guild_id, user_id, issued_by, reason, created_at
		FROM warnings WHERE guild_id = ? AND user_id = ? ORDER BY id ASC`), guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	out := make([]*model.Warning, 0, len(rows))
	for _, r := range rows {
		w := model.Warning(r)
		out = append(out, &w)
	}
	return out, nil
}

func (s *WarningStore) Delete(ctx context.Context, guildID, userID string, id int64) (bool, error) {
	defer s.observe("warnings", "delete")()

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM warnings WHERE guild_id = ? AND user_id = ? AND id = ?`), guildID, userID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete warning %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *WarningStore) Clear(ctx context.Context, guildID, userID string) (int, error) {
	defer s.observe("warnings", "clear")()

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM warnings WHERE guild_id = ? AND user_id = ?`), guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return int(n), nil
}
