package result

// Outcome classifies one finished submission.
type Outcome struct {
	// IsWin is true when the final guess identified a full group,
	// i.e. the last row is monochrome.
	IsWin bool

	// IsUnfailing is true for wins with no wasted guesses: exactly
	// MinRows rows, last row monochrome.
	IsUnfailing bool
}

// Classify derives win/unfailing flags from a reconstructed grid.
// An empty grid classifies as a loss.
func Classify(grid Grid) Outcome {
	if len(grid) == 0 {
		return Outcome{}
	}

	won := grid[len(grid)-1].Monochrome()
	return Outcome{
		IsWin:       won,
		IsUnfailing: won && len(grid) == MinRows,
	}
}

// FirstSolveRow returns the 1-based index of the first monochrome row of
// the given color, or 0 when the color was never solved in this grid.
func FirstSolveRow(grid Grid, color Color) int {
	for i, row := range grid {
		if row.Monochrome() && row[0] == color {
			return i + 1
		}
	}
	return 0
}
