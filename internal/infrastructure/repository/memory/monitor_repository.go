package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/groupgrid/connections-tracker/internal/domain/monitor"
)

type MonitorRepository struct {
	mu       sync.RWMutex
	channels map[string]monitor.Channel
	order    []string
	cursors  map[string]monitor.Cursor
}

func NewMonitorRepository() *MonitorRepository {
	return &MonitorRepository{
		channels: make(map[string]monitor.Channel),
		cursors:  make(map[string]monitor.Cursor),
	}
}

func channelKey(guildID, channelID string) string {
	return guildID + "|" + channelID
}

func (r *MonitorRepository) Add(_ context.Context, item monitor.Channel) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate monitored channel: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := channelKey(item.GuildID, item.ChannelID)
	if _, ok := r.channels[key]; ok {
		return nil
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	r.channels[key] = item
	r.order = append(r.order, key)
	return nil
}

func (r *MonitorRepository) Remove(_ context.Context, guildID, channelID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := channelKey(guildID, channelID)
	if _, ok := r.channels[key]; !ok {
		return false, nil
	}

	delete(r.channels, key)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MonitorRepository) IsMonitored(_ context.Context, guildID, channelID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.channels[channelKey(guildID, channelID)]
	return ok, nil
}

func (r *MonitorRepository) ListByGuild(_ context.Context, guildID string) ([]monitor.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]monitor.Channel, 0)
	for _, key := range r.order {
		item := r.channels[key]
		if item.GuildID == guildID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MonitorRepository) GetCursor(_ context.Context, guildID, channelID string) (monitor.Cursor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.cursors[channelKey(guildID, channelID)]
	if !ok {
		return monitor.Cursor{}, false, nil
	}
	return item, true, nil
}

func (r *MonitorRepository) SaveCursor(_ context.Context, item monitor.Cursor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}
	r.cursors[channelKey(item.GuildID, item.ChannelID)] = item
	return nil
}
