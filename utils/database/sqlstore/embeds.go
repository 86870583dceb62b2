package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"community-bot/model"
	"community-bot/utils/database"

	"github.com/google/uuid"
)

type templateRow struct {
	ID        string    `db:"id"`
	GuildID   string    `db:"guild_id"`
	Name      string    `db:"name"`
	EmbedData string    `db:"embed_data"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *templateRow) toModel() (*model.EmbedTemplate, error) {
	t := &model.EmbedTemplate{
		ID:        r.ID,
		GuildID:   r.GuildID,
		Name:      r.Name,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := decodeJSON(r.EmbedData, &t.Data); err != nil {
		return nil, err
	}
	return t, nil
}

const templateColumns = `id, guild_id, name, embed_data, created_by, created_at, updated_at`

type TemplateStore struct {
	store
}

func (s *TemplateStore) Create(ctx context.Context, t *model.EmbedTemplate) (*model.EmbedTemplate, error) {
	defer s.observe("embed_templates", "create")()

	data, err := encodeJSON(t.Data)
	if err != nil {
		return nil, err
	}
	rec := *t
	rec.Data = t.Data.Clone()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := s.utc()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	row := templateRow{
		ID:        rec.ID,
		GuildID:   rec.GuildID,
		Name:      rec.Name,
		EmbedData: data,
		CreatedBy: rec.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO embed_templates (` + templateColumns + `)
		VALUES (:id, :guild_id, :name, :embed_data, :created_by, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("template %q: %w", rec.Name, database.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert embed template: %w", err)
	}
	return &rec, nil
}

func (s *TemplateStore) Get(ctx context.Context, guildID, name string) (*model.EmbedTemplate, error) {
	defer s.observe("embed_templates", "get")()

	var row templateRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+templateColumns+`
		FROM embed_templates WHERE guild_id = ? AND name = ?`), guildID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get embed template %q: %w", name, err)
	}
	return row.toModel()
}

func (s *TemplateStore) List(ctx context.Context, guildID string) ([]*model.EmbedTemplate, error) {
	defer s.observe("embed_templates", "list")()

	var rows []templateRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`SELECT `+templateColumns+`
		FROM embed_templates WHERE guild_id = ? ORDER BY name ASC`), guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list embed templates for guild %s: %w", guildID, err)
	}
	out := make([]*model.EmbedTemplate, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *TemplateStore) Update(ctx context.Context, guildID, name string, data model.EmbedData) (*model.EmbedTemplate, error) {
	defer s.observe("embed_templates", "update")()

	raw, err := encodeJSON(data)
	if err != nil {
		return nil, err
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE embed_templates SET embed_data = ?, updated_at = ?
		WHERE guild_id = ? AND name = ?`), raw, s.utc(), guildID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to update embed template %q: %w", name, err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return nil, nil
	}
	return s.Get(ctx, guildID, name)
}

func (s *TemplateStore) Delete(ctx context.Context, guildID, name string) (bool, error) {
	defer s.observe("embed_templates", "delete")()

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM embed_templates WHERE guild_id = ? AND name = ?`), guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete embed template %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n > 0, nil
}

type sentEmbedRow struct {
	MessageID string    `db:"message_id"`
	ChannelID string    `db:"channel_id"`
	GuildID   string    `db:"guild_id"`
	EmbedData string    `db:"embed_data"`
	CreatedBy string    `db:"created_by"`
	UpdatedBy string    `db:"updated_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const sentEmbedColumns = `message_id, channel_id, guild_id, embed_data, created_by, updated_by, created_at, updated_at`

type SentEmbedStore struct {
	store
}

func (s *SentEmbedStore) Create(ctx context.Context, e *model.SentEmbed) (*model.SentEmbed, error) {
	defer s.observe("sent_embeds", "create")()

	data, err := encodeJSON(e.Data)
	if err != nil {
		return nil, err
	}
	rec := *e
	rec.Data = e.Data.Clone()
	now := s.utc()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	row := sentEmbedRow{
		MessageID: rec.MessageID,
		ChannelID: rec.ChannelID,
		GuildID:   rec.GuildID,
		EmbedData: data,
		CreatedBy: rec.CreatedBy,
		UpdatedBy: rec.UpdatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO sent_embeds (` + sentEmbedColumns + `)
		VALUES (:message_id, :channel_id, :guild_id, :embed_data, :created_by, :updated_by, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("sent embed %s: %w", rec.MessageID, database.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert sent embed: %w", err)
	}
	return &rec, nil
}

func (s *SentEmbedStore) Get(ctx context.Context, messageID string) (*model.SentEmbed, error) {
	defer s.observe("sent_embeds", "get")()

	var row sentEmbedRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+sentEmbedColumns+` FROM sent_embeds WHERE message_id = ?`), messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sent embed %s: %w", messageID, err)
	}
	e := &model.SentEmbed{
		MessageID: row.MessageID,
		ChannelID: row.ChannelID,
		GuildID:   row.GuildID,
		CreatedBy: row.CreatedBy,
		UpdatedBy: row.UpdatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := decodeJSON(row.EmbedData, &e.Data); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *SentEmbedStore) Update(ctx context.Context, messageID string, data model.EmbedData, updatedBy string) (*model.SentEmbed, error) {
	defer s.observe("sent_embeds", "update")()

	raw, err := encodeJSON(data)
	if err != nil {
		return nil, err
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE sent_embeds SET embed_data = ?, updated_by = ?, updated_at = ?
		WHERE message_id = ?`), raw, updatedBy, s.utc(), messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to update sent embed %s: %w", messageID, err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return nil, nil
	}
	return s.Get(ctx, messageID)
}

func (s *SentEmbedStore) Delete(ctx context.Context, messageID string) (bool, error) {
	defer s.observe("sent_embeds", "delete")()

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM sent_embeds WHERE message_id = ?`), messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete sent embed %s: %w", messageID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n > 0, nil
}
