package result

import (
	"strings"
	"testing"
)

const sampleShare = `Connections
Puzzle #476
🟨🟨🟨🟨
🟩🟩🟦🟩
🟩🟩🟩🟩
🟦🟦🟦🟦
🟪🟪🟪🟪`

func TestParse_AcceptsFullShare(t *testing.T) {
	t.Parallel()

	got := Parse(sampleShare)
	if !got.IsResult {
		t.Fatalf("expected IsResult=true")
	}
	if got.PuzzleNumber != 476 {
		t.Fatalf("expected puzzle 476, got %d", got.PuzzleNumber)
	}
	if len(got.Grid) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(got.Grid))
	}
	if got.Grid[0] != (Row{ColorYellow, ColorYellow, ColorYellow, ColorYellow}) {
		t.Fatalf("unexpected first row: %v", got.Grid[0])
	}
	if got.Grid[1] != (Row{ColorGreen, ColorGreen, ColorBlue, ColorGreen}) {
		t.Fatalf("unexpected second row: %v", got.Grid[1])
	}
}

func TestParse_RowCountBounds(t *testing.T) {
	t.Parallel()

	row := "🟩🟩🟩🟩"
	cases := []struct {
		rows int
		want bool
	}{
		{rows: 3, want: false},
		{rows: 4, want: true},
		{rows: 5, want: true},
		{rows: 6, want: true},
		{rows: 7, want: true},
		{rows: 8, want: false},
	}

	for _, tc := range cases {
		lines := make([]string, tc.rows)
		for i := range lines {
			lines[i] = row
		}
		got := Parse(strings.Join(lines, "\n"))
		if got.IsResult != tc.want {
			t.Fatalf("rows=%d: expected IsResult=%t", tc.rows, tc.want)
		}
	}
}

func TestParse_NeverFailsOnJunk(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"\n\n\n",
		"just chatting about the puzzle",
		"Puzzle #",
		"🟩🟩🟩",
		"🟩🟩🟩🟩🟩",
		strings.Repeat("x", 1<<16),
	} {
		got := Parse(text)
		if got.IsResult {
			t.Fatalf("expected IsResult=false for %q", text)
		}
	}
}

func TestParse_PuzzleNumberWithoutGrid(t *testing.T) {
	t.Parallel()

	got := Parse("Puzzle #123\nno grid here")
	if got.IsResult {
		t.Fatalf("expected IsResult=false")
	}
	if got.PuzzleNumber != 123 {
		t.Fatalf("expected puzzle 123, got %d", got.PuzzleNumber)
	}
}

func TestParse_IgnoresOverlongPuzzleNumbers(t *testing.T) {
	t.Parallel()

	grid := "🟨🟨🟨🟨\n🟩🟩🟩🟩\n🟦🟦🟦🟦\n🟪🟪🟪🟪"

	got := Parse("Puzzle #9999999999999999999999\n" + grid)
	if got.PuzzleNumber != 0 {
		t.Fatalf("expected puzzle 0 for an overlong digit run, got %d", got.PuzzleNumber)
	}
	if !got.IsResult {
		t.Fatalf("expected the grid itself to still parse")
	}

	got = Parse("Puzzle #999999999\n" + grid)
	if got.PuzzleNumber != 999999999 {
		t.Fatalf("expected puzzle 999999999, got %d", got.PuzzleNumber)
	}
}

func TestParse_LastPuzzleLineWins(t *testing.T) {
	t.Parallel()

	got := Parse("Puzzle #10\nPuzzle #20")
	if got.PuzzleNumber != 20 {
		t.Fatalf("expected puzzle 20, got %d", got.PuzzleNumber)
	}
}

func TestParse_IgnoresCommentaryAndWhitespace(t *testing.T) {
	t.Parallel()

	text := "so close today!\nPuzzle #42\n🟩 🟩 🟩 🟩\n🟨🟨🟨🟨\n\n🟦🟦🟦🟦\nugh purple\n🟪🟪🟪🟪"
	got := Parse(text)
	if !got.IsResult {
		t.Fatalf("expected IsResult=true")
	}
	if len(got.Grid) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got.Grid))
	}
}

func TestParse_RejectsMergedRows(t *testing.T) {
	t.Parallel()

	// Two rows collapsed onto one line form an 8-glyph run, which is
	// not a valid single row.
	got := Parse("🟩🟩🟩🟩🟨🟨🟨🟨")
	if len(got.Grid) != 0 {
		t.Fatalf("expected no rows, got %d", len(got.Grid))
	}
}
