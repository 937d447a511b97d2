package monitor

import "context"

// Repository describes monitored-channel persistence needs from use cases.
type Repository interface {
	Add(ctx context.Context, item Channel) error
	Remove(ctx context.Context, guildID, channelID string) (bool, error)
	IsMonitored(ctx context.Context, guildID, channelID string) (bool, error)
	ListByGuild(ctx context.Context, guildID string) ([]Channel, error)

	GetCursor(ctx context.Context, guildID, channelID string) (Cursor, bool, error)
	SaveCursor(ctx context.Context, item Cursor) error
}
