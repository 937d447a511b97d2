package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPuzzleDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC), PuzzleDate(1))
	require.Equal(t, time.Date(2023, time.June, 13, 0, 0, 0, 0, time.UTC), PuzzleDate(2))
	// One year of daily puzzles later.
	require.Equal(t, time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC), PuzzleDate(366))
}

func TestPuzzleDate_NonPositiveNumber(t *testing.T) {
	t.Parallel()

	require.True(t, PuzzleDate(0).IsZero())
	require.True(t, PuzzleDate(-3).IsZero())
}
