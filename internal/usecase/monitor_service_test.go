package usecase

import (
	"errors"
	"testing"

	"github.com/groupgrid/connections-tracker/internal/infrastructure/repository/memory"
)

func TestMonitorService_WatchListUnwatch(t *testing.T) {
	svc := NewMonitorService(memory.NewMonitorRepository())

	if err := svc.Watch(t.Context(), "g1", "c1"); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if err := svc.Watch(t.Context(), "g1", "c2"); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	// Watching an already watched channel is a no-op.
	if err := svc.Watch(t.Context(), "g1", "c1"); err != nil {
		t.Fatalf("re-watch failed: %v", err)
	}

	channels, err := svc.List(t.Context(), "g1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(channels))
	}

	if err := svc.Unwatch(t.Context(), "g1", "c1"); err != nil {
		t.Fatalf("unwatch failed: %v", err)
	}

	channels, err = svc.List(t.Context(), "g1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(channels) != 1 || channels[0].ChannelID != "c2" {
		t.Fatalf("unexpected channels after unwatch: %+v", channels)
	}
}

func TestMonitorService_Unwatch_Unknown(t *testing.T) {
	svc := NewMonitorService(memory.NewMonitorRepository())

	err := svc.Unwatch(t.Context(), "g1", "c1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMonitorService_Watch_RequiresIDs(t *testing.T) {
	svc := NewMonitorService(memory.NewMonitorRepository())

	if err := svc.Watch(t.Context(), "", "c1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Watch(t.Context(), "g1", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
