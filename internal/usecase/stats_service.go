package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/groupgrid/connections-tracker/internal/domain/result"
	"github.com/groupgrid/connections-tracker/internal/domain/stats"
)

// GlobalStats is the guild-wide analytics view.
type GlobalStats struct {
	Results int
	Players int

	// Colors holds per-color difficulty in canonical color order.
	Colors []stats.ColorSummary

	// EasiestBySuccess and EasiestByPosition order the same colors by
	// the two difficulty readings. They can disagree.
	EasiestBySuccess  []stats.ColorSummary
	EasiestByPosition []stats.ColorSummary

	// MostActive, TopWinners, TopWinRates and TopWinStreaks are the
	// leading players by games played, wins, win rate and longest
	// streak. TopWinRates honors the minimum-sample floor.
	MostActive    []stats.PlayerSummary
	TopWinners    []stats.PlayerSummary
	TopWinRates   []stats.PlayerSummary
	TopWinStreaks []stats.PlayerSummary
}

// UserStats is one player's summary plus where they sit on each
// leaderboard relative to their neighbors.
type UserStats struct {
	Summary        stats.PlayerSummary
	LastPuzzleDate time.Time
	Positions      map[stats.Category]stats.Position
}

// Leaderboard is the top and bottom slices of one ranked category.
type Leaderboard struct {
	Category stats.Category
	Top      []stats.PlayerSummary
	Worst    []stats.PlayerSummary
}

type StatsService struct {
	resultRepo result.Repository
}

func NewStatsService(resultRepo result.Repository) *StatsService {
	return &StatsService{resultRepo: resultRepo}
}

func (s *StatsService) buildCorpus(ctx context.Context, guildID string) (result.Corpus, error) {
	rows, err := s.resultRepo.ListCellRows(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list cell rows: %w", err)
	}
	return result.BuildCorpus(rows), nil
}

func (s *StatsService) GetGlobalStats(ctx context.Context, guildID string) (GlobalStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetGlobalStats")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return GlobalStats{}, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}

	results, players, err := s.resultRepo.CountByGuild(ctx, guildID)
	if err != nil {
		return GlobalStats{}, fmt.Errorf("count results: %w", err)
	}

	corpus, err := s.buildCorpus(ctx, guildID)
	if err != nil {
		return GlobalStats{}, err
	}

	summaries := stats.Summarize(corpus)
	tops := make(map[stats.Category][]stats.PlayerSummary)
	for _, category := range []stats.Category{
		stats.CategoryPlayed,
		stats.CategoryWinner,
		stats.CategoryWinRate,
		stats.CategoryWinStreaks,
	} {
		ranked, err := stats.Rank(category, summaries)
		if err != nil {
			return GlobalStats{}, fmt.Errorf("rank %s: %w", category, err)
		}
		tops[category] = stats.Top(ranked)
	}

	colors := stats.SummarizeColors(corpus)
	return GlobalStats{
		Results:           results,
		Players:           players,
		Colors:            colors,
		EasiestBySuccess:  stats.EasiestBySuccessRate(colors),
		EasiestByPosition: stats.EasiestByAvgPosition(colors),
		MostActive:        tops[stats.CategoryPlayed],
		TopWinners:        tops[stats.CategoryWinner],
		TopWinRates:       tops[stats.CategoryWinRate],
		TopWinStreaks:     tops[stats.CategoryWinStreaks],
	}, nil
}

func (s *StatsService) GetUserStats(ctx context.Context, guildID, userID string) (UserStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetUserStats")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	userID = strings.TrimSpace(userID)
	if guildID == "" || userID == "" {
		return UserStats{}, fmt.Errorf("%w: guild id and user id are required", ErrInvalidInput)
	}

	corpus, err := s.buildCorpus(ctx, guildID)
	if err != nil {
		return UserStats{}, err
	}

	summaries := stats.Summarize(corpus)

	var summary stats.PlayerSummary
	found := false
	for _, item := range summaries {
		if item.UserID == userID {
			summary = item
			found = true
			break
		}
	}
	if !found {
		return UserStats{}, fmt.Errorf("%w: user=%s has no recorded games", ErrNotFound, userID)
	}

	positions := make(map[stats.Category]stats.Position)
	for _, category := range stats.Categories() {
		ranked, err := stats.Rank(category, summaries)
		if err != nil {
			return UserStats{}, fmt.Errorf("rank %s: %w", category, err)
		}
		if pos, ok := stats.FindPosition(ranked, userID); ok {
			positions[category] = pos
		}
	}

	return UserStats{
		Summary:        summary,
		LastPuzzleDate: result.PuzzleDate(summary.LastPuzzle),
		Positions:      positions,
	}, nil
}

func (s *StatsService) GetLeaderboard(ctx context.Context, guildID, rawCategory string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetLeaderboard")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return Leaderboard{}, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}

	category, err := stats.ParseCategory(rawCategory)
	if err != nil {
		if errors.Is(err, stats.ErrUnknownCategory) {
			return Leaderboard{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Leaderboard{}, fmt.Errorf("parse category: %w", err)
	}

	corpus, err := s.buildCorpus(ctx, guildID)
	if err != nil {
		return Leaderboard{}, err
	}

	ranked, err := stats.Rank(category, stats.Summarize(corpus))
	if err != nil {
		return Leaderboard{}, fmt.Errorf("rank %s: %w", category, err)
	}

	return Leaderboard{
		Category: category,
		Top:      stats.Top(ranked),
		Worst:    stats.Worst(ranked),
	}, nil
}
