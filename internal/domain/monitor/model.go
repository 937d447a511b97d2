package monitor

import (
	"fmt"
	"time"
)

// Channel is a chat channel watched for puzzle shares.
type Channel struct {
	GuildID   string
	ChannelID string
	AddedAt   time.Time
}

func (c Channel) Validate() error {
	if c.GuildID == "" {
		return fmt.Errorf("channel guild id is required")
	}
	if c.ChannelID == "" {
		return fmt.Errorf("channel id is required")
	}

	return nil
}

// Cursor marks how far history gathering progressed in a channel. The
// message id is opaque bookkeeping from the chat platform; it is only
// ever passed back as a resume point.
type Cursor struct {
	GuildID       string
	ChannelID     string
	LastMessageID string
	UpdatedAt     time.Time
}
