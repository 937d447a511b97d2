package stats

import (
	"fmt"
	"sort"
)

// Category selects one leaderboard ranking.
type Category string

const (
	CategoryWinRate    Category = "winrate"
	CategoryPlayed     Category = "played"
	CategoryWinner     Category = "winner"
	CategoryUnfailing  Category = "unfailing"
	CategoryWinStreaks Category = "winstreaks"
)

var ErrUnknownCategory = fmt.Errorf("unknown leaderboard category")

// rankings maps every category to its full sorted ranking. Keeping the
// dispatch in a closed table keeps category handling exhaustive.
var rankings = map[Category]func([]PlayerSummary) []PlayerSummary{
	CategoryWinRate:    rankByWinRate,
	CategoryPlayed:     rankByPlayed,
	CategoryWinner:     rankByWins,
	CategoryUnfailing:  rankByUnfailingRate,
	CategoryWinStreaks: rankByStreak,
}

// ParseCategory validates a category token from the transport layer.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := rankings[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// Categories lists every supported category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryWinRate,
		CategoryPlayed,
		CategoryWinner,
		CategoryUnfailing,
		CategoryWinStreaks,
	}
}

// Rank returns the full sorted ranking for a category.
func Rank(category Category, summaries []PlayerSummary) ([]PlayerSummary, error) {
	rank, ok := rankings[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return rank(summaries), nil
}

// Top returns the leading LeaderboardSize entries of a ranking.
func Top(ranked []PlayerSummary) []PlayerSummary {
	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}
	return append([]PlayerSummary(nil), ranked...)
}

// Worst returns the trailing LeaderboardSize entries reversed, so the
// weakest entry comes first.
func Worst(ranked []PlayerSummary) []PlayerSummary {
	start := len(ranked) - LeaderboardSize
	if start < 0 {
		start = 0
	}
	tail := ranked[start:]

	out := make([]PlayerSummary, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// Position locates a user in an already-sorted ranking and returns the
// 1-based rank with its immediate neighbors. Found is false when the
// user is absent from the ranking.
type Position struct {
	Rank     int
	Entry    PlayerSummary
	Previous *PlayerSummary
	Next     *PlayerSummary
}

func FindPosition(ranked []PlayerSummary, userID string) (Position, bool) {
	for i := range ranked {
		if ranked[i].UserID != userID {
			continue
		}

		pos := Position{Rank: i + 1, Entry: ranked[i]}
		if i > 0 {
			prev := ranked[i-1]
			pos.Previous = &prev
		}
		if i+1 < len(ranked) {
			next := ranked[i+1]
			pos.Next = &next
		}
		return pos, true
	}
	return Position{}, false
}

func rankByWins(summaries []PlayerSummary) []PlayerSummary {
	out := append([]PlayerSummary(nil), summaries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	return out
}

func rankByPlayed(summaries []PlayerSummary) []PlayerSummary {
	out := append([]PlayerSummary(nil), summaries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].GamesPlayed > out[j].GamesPlayed })
	return out
}

func rankByWinRate(summaries []PlayerSummary) []PlayerSummary {
	out := filterRanked(summaries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].WinRate > out[j].WinRate })
	return out
}

func rankByUnfailingRate(summaries []PlayerSummary) []PlayerSummary {
	out := filterRanked(summaries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnfailingRate > out[j].UnfailingRate })
	return out
}

func rankByStreak(summaries []PlayerSummary) []PlayerSummary {
	out := append([]PlayerSummary(nil), summaries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LongestStreak > out[j].LongestStreak })
	return out
}

// filterRanked applies the minimum-sample-size guard for rate rankings.
func filterRanked(summaries []PlayerSummary) []PlayerSummary {
	out := make([]PlayerSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.GamesPlayed >= MinRankedGames {
			out = append(out, s)
		}
	}
	return out
}
