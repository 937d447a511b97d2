package stats

import (
	"math"
	"testing"

	"github.com/groupgrid/connections-tracker/internal/domain/result"
)

func mono(c result.Color) result.Row {
	return result.Row{c, c, c, c}
}

// winGrid solves in the given number of rows (4..7), last row monochrome.
func winGrid(rows int) result.Grid {
	grid := result.Grid{}
	for i := 0; i < rows-1; i++ {
		grid = append(grid, result.Row{result.ColorGreen, result.ColorGreen, result.ColorGreen, result.ColorYellow})
	}
	return append(grid, mono(result.ColorPurple))
}

// lossGrid never finishes a final group.
func lossGrid() result.Grid {
	grid := result.Grid{}
	for i := 0; i < 4; i++ {
		grid = append(grid, result.Row{result.ColorGreen, result.ColorGreen, result.ColorGreen, result.ColorYellow})
	}
	return grid
}

func TestSummarize_StreaksFollowPuzzleOrder(t *testing.T) {
	t.Parallel()

	// Puzzles 1..6 with pattern W W L W W W.
	corpus := result.Corpus{
		"u1": {
			1: winGrid(4),
			2: winGrid(5),
			3: lossGrid(),
			4: winGrid(6),
			5: winGrid(7),
			6: winGrid(4),
		},
	}

	summaries := Summarize(corpus)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.GamesPlayed != 6 || s.Wins != 5 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", s.LongestStreak)
	}
	if s.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", s.CurrentStreak)
	}
	if s.LongestStreakEndPuzzle != 6 {
		t.Fatalf("expected longest streak ending at puzzle 6, got %d", s.LongestStreakEndPuzzle)
	}
	if s.UnfailingGames != 2 {
		t.Fatalf("expected 2 unfailing games, got %d", s.UnfailingGames)
	}
}

func TestSummarize_GapsDoNotBreakStreaks(t *testing.T) {
	t.Parallel()

	corpus := result.Corpus{
		"u1": {
			10:  winGrid(4),
			50:  winGrid(4),
			200: winGrid(4),
		},
	}

	s := Summarize(corpus)[0]
	if s.LongestStreak != 3 || s.CurrentStreak != 3 {
		t.Fatalf("expected streak 3 across gaps, got %+v", s)
	}
	if s.LastPuzzle != 200 {
		t.Fatalf("expected last puzzle 200, got %d", s.LastPuzzle)
	}
}

func TestSummarize_Rates(t *testing.T) {
	t.Parallel()

	corpus := result.Corpus{
		"u1": {
			1: winGrid(4),
			2: winGrid(5),
			3: lossGrid(),
			4: lossGrid(),
		},
	}

	s := Summarize(corpus)[0]
	if math.Abs(s.WinRate-0.5) > 1e-9 {
		t.Fatalf("expected win rate 0.5, got %f", s.WinRate)
	}
	if math.Abs(s.UnfailingRate-0.25) > 1e-9 {
		t.Fatalf("expected unfailing rate 0.25, got %f", s.UnfailingRate)
	}
}

func TestSummarizeColors_PerfectAndNeverSolved(t *testing.T) {
	t.Parallel()

	// Yellow solved first in every game, purple never solved.
	grid := result.Grid{
		mono(result.ColorYellow),
		mono(result.ColorGreen),
		mono(result.ColorBlue),
		{result.ColorPurple, result.ColorPurple, result.ColorPurple, result.ColorGreen},
	}
	corpus := result.Corpus{
		"u1": {1: grid, 2: grid},
		"u2": {1: grid},
	}

	byColor := make(map[result.Color]ColorSummary)
	for _, s := range SummarizeColors(corpus) {
		byColor[s.Color] = s
	}

	yellow := byColor[result.ColorYellow]
	if yellow.AvgSolveRow != 1.0 || yellow.SuccessRate != 1.0 {
		t.Fatalf("unexpected yellow summary: %+v", yellow)
	}

	purple := byColor[result.ColorPurple]
	if purple.AvgSolveRow != 8.0 {
		t.Fatalf("expected penalty average 8, got %f", purple.AvgSolveRow)
	}
	if purple.SuccessRate != 0 {
		t.Fatalf("expected purple success rate 0, got %f", purple.SuccessRate)
	}
}

func TestColorOrderings(t *testing.T) {
	t.Parallel()

	colors := []ColorSummary{
		{Color: result.ColorGreen, AvgSolveRow: 3.0, SuccessRate: 0.4},
		{Color: result.ColorYellow, AvgSolveRow: 1.5, SuccessRate: 0.9},
		{Color: result.ColorBlue, AvgSolveRow: 2.0, SuccessRate: 0.7},
		{Color: result.ColorPurple, AvgSolveRow: 6.5, SuccessRate: 0.2},
	}

	bySuccess := EasiestBySuccessRate(colors)
	if bySuccess[0].Color != result.ColorYellow || bySuccess[3].Color != result.ColorPurple {
		t.Fatalf("unexpected success-rate order: %+v", bySuccess)
	}

	byPosition := EasiestByAvgPosition(colors)
	if byPosition[0].Color != result.ColorYellow || byPosition[1].Color != result.ColorBlue {
		t.Fatalf("unexpected avg-position order: %+v", byPosition)
	}
}

func TestSummarize_EmptyCorpus(t *testing.T) {
	t.Parallel()

	if got := Summarize(result.Corpus{}); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
	colors := SummarizeColors(result.Corpus{})
	if len(colors) != 4 {
		t.Fatalf("expected 4 color rows, got %d", len(colors))
	}
	for _, c := range colors {
		if c.AvgSolveRow != 0 || c.SuccessRate != 0 {
			t.Fatalf("expected zeroed color summary, got %+v", c)
		}
	}
}
