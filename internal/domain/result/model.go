package result

import (
	"fmt"
	"time"
)

// Color is one of the four canonical Connections group colors.
type Color int

const (
	ColorGreen  Color = 0
	ColorYellow Color = 1
	ColorBlue   Color = 2
	ColorPurple Color = 3

	// ColorNone marks a grid cell that was never populated from storage.
	ColorNone Color = -1
)

const (
	// RowWidth is the number of tiles in one guess row.
	RowWidth = 4

	// MinRows and MaxRows bound how many guess rows a valid submission has.
	MinRows = 4
	MaxRows = 7
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	default:
		return "none"
	}
}

// Colors lists the canonical colors in storage order.
func Colors() []Color {
	return []Color{ColorGreen, ColorYellow, ColorBlue, ColorPurple}
}

// Row is one guess attempt, left to right.
type Row [RowWidth]Color

// Monochrome reports whether every tile in the row shares one color.
func (r Row) Monochrome() bool {
	for _, c := range r[1:] {
		if c != r[0] {
			return false
		}
	}
	return r[0] != ColorNone
}

// Grid is the ordered guess rows of one submission.
type Grid []Row

// Result is an accepted puzzle submission bound to its chat origin.
type Result struct {
	GuildID      string
	ChannelID    string
	UserID       string
	Timestamp    time.Time
	PuzzleNumber int
	Grid         Grid
}

func (r Result) Validate() error {
	if r.GuildID == "" {
		return fmt.Errorf("result guild id is required")
	}
	if r.ChannelID == "" {
		return fmt.Errorf("result channel id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("result user id is required")
	}
	if r.PuzzleNumber <= 0 {
		return fmt.Errorf("result puzzle number must be > 0")
	}
	if len(r.Grid) < MinRows || len(r.Grid) > MaxRows {
		return fmt.Errorf("result grid must have %d to %d rows, got %d", MinRows, MaxRows, len(r.Grid))
	}

	return nil
}

// CellRow is one flattened grid cell as it comes back from storage.
type CellRow struct {
	UserID       string
	PuzzleNumber int
	Timestamp    time.Time
	Row          int
	Col          int
	Color        Color
}
