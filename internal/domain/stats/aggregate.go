package stats

import (
	"sort"

	"github.com/groupgrid/connections-tracker/internal/domain/result"
)

const (
	// MinRankedGames is the sample-size floor for rate leaderboards.
	// Users below it are excluded from "top" and "worst" rankings even
	// at 100% or 0%.
	MinRankedGames = 10

	// LeaderboardSize is how many entries top/worst views show.
	LeaderboardSize = 3

	// unsolvedColorScore penalizes a color never solved within a grid.
	unsolvedColorScore = 8
)

// PlayerSummary carries every per-user metric derived from one corpus.
type PlayerSummary struct {
	UserID                 string
	GamesPlayed            int
	Wins                   int
	WinRate                float64
	UnfailingGames         int
	UnfailingRate          float64
	LongestStreak          int
	LongestStreakEndPuzzle int
	CurrentStreak          int
	LastPuzzle             int
}

// ColorSummary scores one canonical color across all games of a corpus.
type ColorSummary struct {
	Color result.Color

	// AvgSolveRow averages the 1-based row where the color was first
	// solved, with unsolved games scored at the fixed penalty.
	AvgSolveRow float64

	// SuccessRate is the fraction of games that solved the color at all.
	SuccessRate float64
}

// Summarize classifies and aggregates every user's puzzle history.
// Output is sorted by user id for deterministic downstream ordering.
func Summarize(corpus result.Corpus) []PlayerSummary {
	out := make([]PlayerSummary, 0, len(corpus))
	for userID, puzzles := range corpus {
		out = append(out, summarizeUser(userID, puzzles))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func summarizeUser(userID string, puzzles map[int]result.Grid) PlayerSummary {
	summary := PlayerSummary{UserID: userID}

	numbers := make([]int, 0, len(puzzles))
	for n := range puzzles {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	// Streaks advance per entry in the user's puzzle list ordered by
	// ascending puzzle number; skipped days do not break a streak.
	current := 0
	for _, n := range numbers {
		outcome := result.Classify(puzzles[n])
		summary.GamesPlayed++

		if outcome.IsWin {
			summary.Wins++
			current++
			if current > summary.LongestStreak {
				summary.LongestStreak = current
				summary.LongestStreakEndPuzzle = n
			}
		} else {
			current = 0
		}

		if outcome.IsUnfailing {
			summary.UnfailingGames++
		}
	}

	if len(numbers) > 0 {
		summary.LastPuzzle = numbers[len(numbers)-1]
	}
	summary.CurrentStreak = current

	if summary.GamesPlayed > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.GamesPlayed)
		summary.UnfailingRate = float64(summary.UnfailingGames) / float64(summary.GamesPlayed)
	}

	return summary
}

// SummarizeColors scores the four canonical colors over every game in
// the corpus. Games whose grid never solved a color contribute the
// penalty score and count against that color's success rate.
func SummarizeColors(corpus result.Corpus) []ColorSummary {
	games := 0
	totals := make(map[result.Color]int)
	solved := make(map[result.Color]int)

	for _, puzzles := range corpus {
		for _, grid := range puzzles {
			games++
			for _, color := range result.Colors() {
				row := result.FirstSolveRow(grid, color)
				if row == 0 {
					totals[color] += unsolvedColorScore
					continue
				}
				totals[color] += row
				solved[color]++
			}
		}
	}

	out := make([]ColorSummary, 0, len(result.Colors()))
	for _, color := range result.Colors() {
		summary := ColorSummary{Color: color}
		if games > 0 {
			summary.AvgSolveRow = float64(totals[color]) / float64(games)
			summary.SuccessRate = float64(solved[color]) / float64(games)
		}
		out = append(out, summary)
	}
	return out
}

// EasiestBySuccessRate orders colors most-solved first.
func EasiestBySuccessRate(colors []ColorSummary) []ColorSummary {
	out := append([]ColorSummary(nil), colors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SuccessRate > out[j].SuccessRate })
	return out
}

// EasiestByAvgPosition orders colors by earliest average solve row.
func EasiestByAvgPosition(colors []ColorSummary) []ColorSummary {
	out := append([]ColorSummary(nil), colors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgSolveRow < out[j].AvgSolveRow })
	return out
}
