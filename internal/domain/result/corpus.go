package result

// Corpus is every stored grid of a guild, keyed by user then puzzle.
// It is rebuilt from flattened storage rows for each analytics request
// and never outlives it.
type Corpus map[string]map[int]Grid

// BuildCorpus reassembles grids from flattened cell rows. Cells land at
// grid[row][col]; rows the store never fully populated stay partially
// filled (ColorNone) rather than failing the whole corpus. Row order is
// preserved as delivered.
func BuildCorpus(rows []CellRow) Corpus {
	corpus := make(Corpus)
	for _, cell := range rows {
		if cell.Row < 0 || cell.Col < 0 || cell.Col >= RowWidth {
			continue
		}

		puzzles, ok := corpus[cell.UserID]
		if !ok {
			puzzles = make(map[int]Grid)
			corpus[cell.UserID] = puzzles
		}

		grid := puzzles[cell.PuzzleNumber]
		for len(grid) <= cell.Row {
			grid = append(grid, emptyRow())
		}
		grid[cell.Row][cell.Col] = cell.Color
		puzzles[cell.PuzzleNumber] = grid
	}
	return corpus
}

func emptyRow() Row {
	return Row{ColorNone, ColorNone, ColorNone, ColorNone}
}
