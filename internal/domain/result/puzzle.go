package result

import "time"

// Connections puzzle #1 was published on June 12, 2023.
var firstPuzzleDate = time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC)

// PuzzleDate maps a puzzle number to its publication date. Numbers
// below 1 return the zero time.
func PuzzleDate(puzzleNumber int) time.Time {
	if puzzleNumber < 1 {
		return time.Time{}
	}
	return firstPuzzleDate.AddDate(0, 0, puzzleNumber-1)
}
