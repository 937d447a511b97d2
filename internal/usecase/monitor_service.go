package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/groupgrid/connections-tracker/internal/domain/monitor"
)

type MonitorService struct {
	monitorRepo monitor.Repository
}

func NewMonitorService(monitorRepo monitor.Repository) *MonitorService {
	return &MonitorService{monitorRepo: monitorRepo}
}

func (s *MonitorService) Watch(ctx context.Context, guildID, channelID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.Watch")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	channelID = strings.TrimSpace(channelID)
	if guildID == "" || channelID == "" {
		return fmt.Errorf("%w: guild id and channel id are required", ErrInvalidInput)
	}

	if err := s.monitorRepo.Add(ctx, monitor.Channel{GuildID: guildID, ChannelID: channelID}); err != nil {
		return fmt.Errorf("add monitored channel: %w", err)
	}
	return nil
}

func (s *MonitorService) Unwatch(ctx context.Context, guildID, channelID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.Unwatch")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	channelID = strings.TrimSpace(channelID)
	if guildID == "" || channelID == "" {
		return fmt.Errorf("%w: guild id and channel id are required", ErrInvalidInput)
	}

	removed, err := s.monitorRepo.Remove(ctx, guildID, channelID)
	if err != nil {
		return fmt.Errorf("remove monitored channel: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: channel=%s is not monitored", ErrNotFound, channelID)
	}
	return nil
}

func (s *MonitorService) List(ctx context.Context, guildID string) ([]monitor.Channel, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.List")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}

	channels, err := s.monitorRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list monitored channels: %w", err)
	}
	return channels, nil
}
