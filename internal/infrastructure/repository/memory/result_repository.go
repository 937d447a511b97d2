package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/groupgrid/connections-tracker/internal/domain/result"
)

type ResultRepository struct {
	mu    sync.RWMutex
	items map[string]result.Result
	order []string
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{items: make(map[string]result.Result)}
}

func resultKey(guildID, userID string, puzzleNumber int) string {
	return fmt.Sprintf("%s|%s|%d", guildID, userID, puzzleNumber)
}

func (r *ResultRepository) InsertIfAbsent(_ context.Context, item result.Result) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, fmt.Errorf("validate result: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := resultKey(item.GuildID, item.UserID, item.PuzzleNumber)
	if _, ok := r.items[key]; ok {
		return false, nil
	}

	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}
	item.Grid = cloneGrid(item.Grid)

	r.items[key] = item
	r.order = append(r.order, key)
	return true, nil
}

func (r *ResultRepository) ListCellRows(_ context.Context, guildID string) ([]result.CellRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []result.CellRow
	for _, key := range r.order {
		item := r.items[key]
		if item.GuildID != guildID {
			continue
		}
		for rowIdx, row := range item.Grid {
			for colIdx, color := range row {
				out = append(out, result.CellRow{
					UserID:       item.UserID,
					PuzzleNumber: item.PuzzleNumber,
					Timestamp:    item.Timestamp,
					Row:          rowIdx,
					Col:          colIdx,
					Color:        color,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		if out[i].PuzzleNumber != out[j].PuzzleNumber {
			return out[i].PuzzleNumber < out[j].PuzzleNumber
		}
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out, nil
}

func (r *ResultRepository) CountByGuild(_ context.Context, guildID string) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := 0
	players := make(map[string]struct{})
	for _, item := range r.items {
		if item.GuildID != guildID {
			continue
		}
		results++
		players[item.UserID] = struct{}{}
	}
	return results, len(players), nil
}

func cloneGrid(grid result.Grid) result.Grid {
	out := make(result.Grid, len(grid))
	copy(out, grid)
	return out
}
