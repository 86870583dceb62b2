package sqlstore

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS tickets (
		channel_id TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'open',
		claimed_by TEXT NOT NULL DEFAULT '',
		closed_by TEXT NOT NULL DEFAULT '',
		closed_at TIMESTAMP NULL,
		ticket_name TEXT NOT NULL DEFAULT '',
		participants TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_guild ON tickets (guild_id)`,
	`CREATE TABLE IF NOT EXISTS ticket_counters (
		guild_id TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		channel_id TEXT NOT NULL,
		message_id TEXT NOT NULL DEFAULT '',
		author_id TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		attachments TEXT NOT NULL DEFAULT '[]',
		sent_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_messages_channel ON ticket_messages (channel_id)`,
	`CREATE TABLE IF NOT EXISTS ticket_settings (
		guild_id TEXT PRIMARY KEY,
		category_id TEXT NOT NULL DEFAULT '',
		staff_role_ids TEXT NOT NULL DEFAULT '[]',
		logs_channel TEXT NOT NULL DEFAULT '',
		ticket_types TEXT NOT NULL DEFAULT '[]',
		welcome_message TEXT NOT NULL DEFAULT '',
		panel_channel_id TEXT NOT NULL DEFAULT '',
		panel_message_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_logs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		channel_id TEXT NOT NULL DEFAULT '',
		ticket_id TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		actor_id TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_logs_guild ON ticket_logs (guild_id)`,
	`CREATE TABLE IF NOT EXISTS embed_templates (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		name TEXT NOT NULL,
		embed_data TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (guild_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS sent_embeds (
		message_id TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		embed_data TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		issued_by TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_warnings_member ON warnings (guild_id, user_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS tickets (
		channel_id TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'open',
		claimed_by TEXT NOT NULL DEFAULT '',
		closed_by TEXT NOT NULL DEFAULT '',
		closed_at TIMESTAMPTZ NULL,
		ticket_name TEXT NOT NULL DEFAULT '',
		participants TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_guild ON tickets (guild_id)`,
	`CREATE TABLE IF NOT EXISTS ticket_counters (
		guild_id TEXT PRIMARY KEY,
		value BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_messages (
		seq BIGSERIAL PRIMARY KEY,
		channel_id TEXT NOT NULL,
		message_id TEXT NOT NULL DEFAULT '',
		author_id TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		attachments TEXT NOT NULL DEFAULT '[]',
		sent_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_messages_channel ON ticket_messages (channel_id)`,
	`CREATE TABLE IF NOT EXISTS ticket_settings (
		guild_id TEXT PRIMARY KEY,
		category_id TEXT NOT NULL DEFAULT '',
		staff_role_ids TEXT NOT NULL DEFAULT '[]',
		logs_channel TEXT NOT NULL DEFAULT '',
		ticket_types TEXT NOT NULL DEFAULT '[]',
		welcome_message TEXT NOT NULL DEFAULT '',
		panel_channel_id TEXT NOT NULL DEFAULT '',
		panel_message_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_logs (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		channel_id TEXT NOT NULL DEFAULT '',
		ticket_id TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		actor_id TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_logs_guild ON ticket_logs (guild_id)`,
	`CREATE TABLE IF NOT EXISTS embed_templates (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		name TEXT NOT NULL,
		embed_data TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (guild_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS sent_embeds (
		message_id TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		embed_data TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS warnings (
		id BIGSERIAL PRIMARY KEY,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		issued_by TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_warnings_member ON warnings (guild_id, user_id)`,
}

// migrations are additive ALTERs run after the schema; "duplicate column" errors are ignored.
var migrations = []string{
	`ALTER TABLE tickets ADD COLUMN close_reason TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE tickets ADD COLUMN version INTEGER NOT NULL DEFAULT 1`,
}
