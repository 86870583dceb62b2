package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"community-bot/model"
)

type settingsRow struct {
	GuildID        string    `db:"guild_id"`
	CategoryID     string    `db:"category_id"`
	StaffRoleIDs   string    `db:"staff_role_ids"`
	LogsChannel    string    `db:"logs_channel"`
	TicketTypes    string    `db:"ticket_types"`
	WelcomeMessage string    `db:"welcome_message"`
	PanelChannelID string    `db:"panel_channel_id"`
	PanelMessageID string    `db:"panel_message_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type SettingsStore struct {
	store
}

func (s *SettingsStore) Upsert(ctx context.Context, in *model.TicketSettings) (*model.TicketSettings, error) {
	defer s.observe("ticket_settings", "upsert")()

	roles, err := encodeJSON(nonNil(in.StaffRoleIDs))
	if err != nil {
		return nil, err
	}
	types := in.TicketTypes
	if types == nil {
		types = []model.TicketType{}
	}
	typesJSON, err := encodeJSON(types)
	if err != nil {
		return nil, err
	}
	now := s.utc()
	row := settingsRow{
		GuildID:        in.GuildID,
		CategoryID:     in.CategoryID,
		StaffRoleIDs:   roles,
		LogsChannel:    in.LogsChannel,
		TicketTypes:    typesJSON,
		WelcomeMessage: in.WelcomeMessage,
		PanelChannelID: in.PanelChannelID,
		PanelMessageID: in.PanelMessageID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// created_at is left alone on conflict so the first setup time survives.
	query := `INSERT INTO ticket_settings (guild_id, category_id, staff_role_ids, logs_channel, ticket_types,
			welcome_message, panel_channel_id, panel_message_id, created_at, updated_at)
		VALUES (:guild_id, :category_id, :staff_role_ids, :logs_channel, :ticket_types,
			:welcome_message, :panel_channel_id, :panel_message_id, :created_at, :updated_at)
		ON CONFLICT (guild_id) DO UPDATE SET
			category_id = excluded.category_id,
			staff_role_ids = excluded.staff_role_ids,
			logs_channel = excluded.logs_channel,
			ticket_types = excluded.ticket_types,
			welcome_message = excluded.welcome_message,
			panel_channel_id = excluded.panel_channel_id,
			panel_message_id = excluded.panel_message_id,
			updated_at = excluded.updated_at`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("failed to upsert ticket settings for guild %s: %w", in.GuildID, err)
	}
	return s.Get(ctx, in.GuildID)
}

func (s *SettingsStore) Get(ctx context.Context, guildID string) (*model.TicketSettings, error) {
	defer s.observe("ticket_settings", "get")()

	var row settingsRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT guild_id, category_id, staff_role_ids, logs_channel,
		ticket_types, welcome_message, panel_channel_id, panel_message_id, created_at, updated_at
		FROM ticket_settings WHERE guild_id = ?`), guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket settings for guild %s: %w", guildID, err)
	}

	out := &model.TicketSettings{
		GuildID:        row.GuildID,
		CategoryID:     row.CategoryID,
		LogsChannel:    row.LogsChannel,
		WelcomeMessage: row.WelcomeMessage,
		PanelChannelID: row.PanelChannelID,
		PanelMessageID: row.PanelMessageID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if err := decodeJSON(row.StaffRoleIDs, &out.StaffRoleIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.TicketTypes, &out.TicketTypes); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SettingsStore) Delete(ctx context.Context, guildID string) (bool, error) {
	defer s.observe("ticket_settings", "delete")()

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM ticket_settings WHERE guild_id = ?`), guildID)
	if err != nil {
		return false, fmt.Errorf("failed to delete ticket settings for guild %s: %w", guildID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n > 0, nil
}
