package postgres

import "time"

type monitoredChannelTableModel struct {
	ID        int64     `db:"id"`
	GuildID   string    `db:"guild_id"`
	ChannelID string    `db:"channel_id"`
	AddedAt   time.Time `db:"added_at"`
}

type gatherCursorTableModel struct {
	ID            int64     `db:"id"`
	GuildID       string    `db:"guild_id"`
	ChannelID     string    `db:"channel_id"`
	LastMessageID string    `db:"last_message_id"`
	UpdatedAt     time.Time `db:"updated_at"`
}
