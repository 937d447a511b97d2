package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/groupgrid/connections-tracker/internal/domain/monitor"
	"github.com/groupgrid/connections-tracker/internal/domain/result"
	"github.com/groupgrid/connections-tracker/internal/platform/logging"
)

const (
	defaultGatherPageSize = 100
	defaultGatherWorkers  = 4
	maxGatherPageSize     = 100
)

// ChatMessage is one message as delivered by the chat platform.
type ChatMessage struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
	Timestamp time.Time

	// Bot marks messages written by bot accounts, this service's own
	// relays included. They are never player submissions.
	Bot bool
}

// ChannelHistory pages backwards through a channel's message history.
// An empty beforeID starts from the newest message.
type ChannelHistory interface {
	ListMessagesBefore(ctx context.Context, channelID, beforeID string, limit int) ([]ChatMessage, error)
}

// IngestStatus tells a caller what happened to one submitted message.
type IngestStatus string

const (
	IngestStored       IngestStatus = "stored"
	IngestDuplicate    IngestStatus = "duplicate"
	IngestNotMonitored IngestStatus = "not_monitored"
	IngestNotResult    IngestStatus = "not_result"
	IngestNoPuzzle     IngestStatus = "no_puzzle_number"
)

// GatherReport summarizes one history backfill run.
type GatherReport struct {
	Pages      int
	Scanned    int
	Stored     int
	Duplicates int
	Skipped    int

	// LastMessageID is the oldest message reached, persisted as the
	// resume cursor for the next run.
	LastMessageID string
}

type IngestService struct {
	resultRepo  result.Repository
	monitorRepo monitor.Repository
	history     ChannelHistory
	logger      *logging.Logger

	gatherPageSize int
	gatherWorkers  int
}

func NewIngestService(
	resultRepo result.Repository,
	monitorRepo monitor.Repository,
	history ChannelHistory,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		resultRepo:     resultRepo,
		monitorRepo:    monitorRepo,
		history:        history,
		logger:         logger,
		gatherPageSize: defaultGatherPageSize,
		gatherWorkers:  defaultGatherWorkers,
	}
}

// WithGatherTuning overrides page size and worker count for history
// backfills. Zero or negative values keep the defaults.
func (s *IngestService) WithGatherTuning(pageSize, workers int) *IngestService {
	if pageSize > 0 {
		if pageSize > maxGatherPageSize {
			pageSize = maxGatherPageSize
		}
		s.gatherPageSize = pageSize
	}
	if workers > 0 {
		s.gatherWorkers = workers
	}
	return s
}

// HandleMessage inspects one live message and stores it when it is a
// puzzle share from a monitored channel. Everything else is reported
// through the status, never as an error.
func (s *IngestService) HandleMessage(ctx context.Context, msg ChatMessage) (IngestStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.HandleMessage")
	defer span.End()

	msg.GuildID = strings.TrimSpace(msg.GuildID)
	msg.ChannelID = strings.TrimSpace(msg.ChannelID)
	msg.AuthorID = strings.TrimSpace(msg.AuthorID)
	if msg.GuildID == "" || msg.ChannelID == "" || msg.AuthorID == "" {
		return "", fmt.Errorf("%w: guild, channel and author ids are required", ErrInvalidInput)
	}

	monitored, err := s.monitorRepo.IsMonitored(ctx, msg.GuildID, msg.ChannelID)
	if err != nil {
		return "", fmt.Errorf("check monitored channel: %w", err)
	}
	if !monitored {
		return IngestNotMonitored, nil
	}

	return s.ingest(ctx, msg)
}

func (s *IngestService) ingest(ctx context.Context, msg ChatMessage) (IngestStatus, error) {
	if msg.Bot {
		return IngestNotResult, nil
	}

	parsed := result.Parse(msg.Content)
	if !parsed.IsResult {
		return IngestNotResult, nil
	}
	if parsed.PuzzleNumber <= 0 {
		// Without a puzzle number the share cannot be deduplicated
		// or dated, so it is dropped rather than stored ambiguously.
		s.logger.WarnContext(ctx, "dropping result without puzzle number",
			"guild_id", msg.GuildID,
			"channel_id", msg.ChannelID,
			"user_id", msg.AuthorID,
		)
		return IngestNoPuzzle, nil
	}

	item := result.Result{
		GuildID:      msg.GuildID,
		ChannelID:    msg.ChannelID,
		UserID:       msg.AuthorID,
		Timestamp:    msg.Timestamp,
		PuzzleNumber: parsed.PuzzleNumber,
		Grid:         parsed.Grid,
	}

	inserted, err := s.resultRepo.InsertIfAbsent(ctx, item)
	if err != nil {
		return "", fmt.Errorf("store result: %w", err)
	}
	if !inserted {
		return IngestDuplicate, nil
	}

	s.logger.InfoContext(ctx, "stored puzzle result",
		"guild_id", msg.GuildID,
		"user_id", msg.AuthorID,
		"puzzle_number", parsed.PuzzleNumber,
	)
	return IngestStored, nil
}

// Gather backfills a monitored channel by paging backwards through its
// history. Parsing fans out over a worker pool; inserts run after each
// page so the cursor only ever advances past fully handled messages.
func (s *IngestService) Gather(ctx context.Context, guildID, channelID string) (GatherReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Gather")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	channelID = strings.TrimSpace(channelID)
	if guildID == "" || channelID == "" {
		return GatherReport{}, fmt.Errorf("%w: guild id and channel id are required", ErrInvalidInput)
	}
	if s.history == nil {
		return GatherReport{}, fmt.Errorf("%w: channel history is not configured", ErrDependencyUnavailable)
	}

	monitored, err := s.monitorRepo.IsMonitored(ctx, guildID, channelID)
	if err != nil {
		return GatherReport{}, fmt.Errorf("check monitored channel: %w", err)
	}
	if !monitored {
		return GatherReport{}, fmt.Errorf("%w: channel=%s is not monitored", ErrNotFound, channelID)
	}

	beforeID := ""
	if cursor, found, err := s.monitorRepo.GetCursor(ctx, guildID, channelID); err != nil {
		return GatherReport{}, fmt.Errorf("get gather cursor: %w", err)
	} else if found {
		beforeID = cursor.LastMessageID
	}

	pool, err := ants.NewPool(s.gatherWorkers)
	if err != nil {
		return GatherReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var report GatherReport
	report.LastMessageID = beforeID

	for {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("gather interrupted: %w", err)
		}

		page, err := s.history.ListMessagesBefore(ctx, channelID, beforeID, s.gatherPageSize)
		if err != nil {
			return report, fmt.Errorf("%w: fetch channel history: %v", ErrDependencyUnavailable, err)
		}
		if len(page) == 0 {
			break
		}
		report.Pages++
		report.Scanned += len(page)

		parsed := s.parsePage(pool, page)
		for idx, msg := range page {
			if msg.Bot {
				continue
			}
			p := parsed[idx]
			if !p.IsResult {
				continue
			}
			if p.PuzzleNumber <= 0 {
				report.Skipped++
				continue
			}

			inserted, err := s.resultRepo.InsertIfAbsent(ctx, result.Result{
				GuildID:      guildID,
				ChannelID:    channelID,
				UserID:       msg.AuthorID,
				Timestamp:    msg.Timestamp,
				PuzzleNumber: p.PuzzleNumber,
				Grid:         p.Grid,
			})
			if err != nil {
				return report, fmt.Errorf("store gathered result: %w", err)
			}
			if inserted {
				report.Stored++
			} else {
				report.Duplicates++
			}
		}

		beforeID = page[len(page)-1].MessageID
		report.LastMessageID = beforeID

		if err := s.monitorRepo.SaveCursor(ctx, monitor.Cursor{
			GuildID:       guildID,
			ChannelID:     channelID,
			LastMessageID: beforeID,
		}); err != nil {
			return report, fmt.Errorf("save gather cursor: %w", err)
		}

		if len(page) < s.gatherPageSize {
			break
		}
	}

	s.logger.InfoContext(ctx, "gather finished",
		"guild_id", guildID,
		"channel_id", channelID,
		"pages", report.Pages,
		"scanned", report.Scanned,
		"stored", report.Stored,
		"duplicates", report.Duplicates,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (s *IngestService) parsePage(pool *ants.Pool, page []ChatMessage) []result.Parsed {
	parsed := make([]result.Parsed, len(page))

	var workers sync.WaitGroup
	for idx := range page {
		idx := idx
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			parsed[idx] = result.Parse(page[idx].Content)
		}); err != nil {
			// Pool is released only after Gather returns; a failed
			// submit means we parse inline instead.
			workers.Done()
			parsed[idx] = result.Parse(page[idx].Content)
		}
	}
	workers.Wait()

	return parsed
}
