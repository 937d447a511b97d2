package result

import (
	"strings"
	"unicode"
)

const puzzleLinePrefix = "Puzzle #"

// maxPuzzleDigits bounds the digit run read as a puzzle number; longer
// runs would overflow int and cannot be real puzzle numbers.
const maxPuzzleDigits = 9

var glyphColors = map[rune]Color{
	'🟩': ColorGreen,
	'🟨': ColorYellow,
	'🟦': ColorBlue,
	'🟪': ColorPurple,
}

// Parsed is the outcome of scanning one chat message.
type Parsed struct {
	// IsResult is true when the message holds a complete share
	// (between MinRows and MaxRows guess rows).
	IsResult bool

	// PuzzleNumber is 0 when no "Puzzle #" line was present.
	PuzzleNumber int

	Grid Grid
}

// Parse scans free-form message text for a shared Connections result.
// It never fails: text without a valid share comes back with
// IsResult=false. Commentary lines around the grid are ignored.
func Parse(text string) Parsed {
	if text == "" {
		return Parsed{}
	}

	var parsed Parsed
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, puzzleLinePrefix) {
			if n := leadingDigits(line[len(puzzleLinePrefix):]); n > 0 {
				// Last "Puzzle #" line wins when a message has several.
				parsed.PuzzleNumber = n
			}
		}

		if row, ok := parseRow(line); ok {
			parsed.Grid = append(parsed.Grid, row)
		}
	}

	parsed.IsResult = len(parsed.Grid) >= MinRows && len(parsed.Grid) <= MaxRows
	return parsed
}

// parseRow accepts a line iff, after stripping whitespace, it contains a
// run of exactly RowWidth color glyphs. Shares pad rows with spaces on
// some clients, so whitespace inside the run is tolerated.
func parseRow(line string) (Row, bool) {
	stripped := stripWhitespace(line)

	var (
		row    Row
		runLen int
		runAt  = -1
	)
	for i, r := range []rune(stripped) {
		if _, ok := glyphColors[r]; ok {
			if runAt < 0 {
				runAt = i
			}
			runLen++
			continue
		}
		if runAt >= 0 {
			break
		}
	}

	if runLen != RowWidth {
		return Row{}, false
	}

	runes := []rune(stripped)[runAt : runAt+RowWidth]
	for i, r := range runes {
		row[i] = glyphColors[r]
	}
	return row, true
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func leadingDigits(s string) int {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return r < '0' || r > '9' })

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if digits > maxPuzzleDigits {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if digits == 0 {
		return 0
	}
	return n
}
