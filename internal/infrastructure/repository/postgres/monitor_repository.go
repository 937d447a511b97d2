package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/groupgrid/connections-tracker/internal/domain/monitor"
	qb "github.com/groupgrid/connections-tracker/internal/platform/querybuilder"
)

type MonitorRepository struct {
	db *sqlx.DB
}

func NewMonitorRepository(db *sqlx.DB) *MonitorRepository {
	return &MonitorRepository{db: db}
}

func (r *MonitorRepository) Add(ctx context.Context, item monitor.Channel) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate monitored channel: %w", err)
	}

	addedAt := item.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now().UTC()
	}

	query, args, err := qb.InsertInto("monitored_channels").
		Columns("guild_id", "channel_id", "added_at").
		Values(item.GuildID, item.ChannelID, addedAt).
		Suffix("ON CONFLICT (guild_id, channel_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert monitored channel query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert monitored channel: %w", err)
	}
	return nil
}

func (r *MonitorRepository) Remove(ctx context.Context, guildID, channelID string) (bool, error) {
	query, args, err := qb.DeleteFrom("monitored_channels").
		Where(
			qb.Eq("guild_id", guildID),
			qb.Eq("channel_id", channelID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete monitored channel query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete monitored channel: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete monitored channel rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *MonitorRepository) IsMonitored(ctx context.Context, guildID, channelID string) (bool, error) {
	query, args, err := qb.Select("id").
		From("monitored_channels").
		Where(
			qb.Eq("guild_id", guildID),
			qb.Eq("channel_id", channelID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build get monitored channel query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get monitored channel: %w", err)
	}
	return true, nil
}

func (r *MonitorRepository) ListByGuild(ctx context.Context, guildID string) ([]monitor.Channel, error) {
	query, args, err := qb.Select("*").
		From("monitored_channels").
		Where(qb.Eq("guild_id", guildID)).
		OrderBy("added_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list monitored channels query: %w", err)
	}

	var rows []monitoredChannelTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list monitored channels: %w", err)
	}

	out := make([]monitor.Channel, 0, len(rows))
	for _, row := range rows {
		out = append(out, monitor.Channel{
			GuildID:   row.GuildID,
			ChannelID: row.ChannelID,
			AddedAt:   row.AddedAt,
		})
	}
	return out, nil
}

func (r *MonitorRepository) GetCursor(ctx context.Context, guildID, channelID string) (monitor.Cursor, bool, error) {
	query, args, err := qb.Select("*").
		From("gather_cursors").
		Where(
			qb.Eq("guild_id", guildID),
			qb.Eq("channel_id", channelID),
		).
		ToSQL()
	if err != nil {
		return monitor.Cursor{}, false, fmt.Errorf("build get gather cursor query: %w", err)
	}

	var row gatherCursorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return monitor.Cursor{}, false, nil
		}
		return monitor.Cursor{}, false, fmt.Errorf("get gather cursor: %w", err)
	}

	return monitor.Cursor{
		GuildID:       row.GuildID,
		ChannelID:     row.ChannelID,
		LastMessageID: row.LastMessageID,
		UpdatedAt:     row.UpdatedAt,
	}, true, nil
}

func (r *MonitorRepository) SaveCursor(ctx context.Context, item monitor.Cursor) error {
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := qb.InsertInto("gather_cursors").
		Columns("guild_id", "channel_id", "last_message_id", "updated_at").
		Values(item.GuildID, item.ChannelID, item.LastMessageID, updatedAt).
		Suffix(`ON CONFLICT (guild_id, channel_id)
DO UPDATE SET
    last_message_id = EXCLUDED.last_message_id,
    updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save gather cursor query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save gather cursor: %w", err)
	}
	return nil
}
