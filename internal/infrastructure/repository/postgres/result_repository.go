package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/groupgrid/connections-tracker/internal/domain/result"
	"github.com/groupgrid/connections-tracker/internal/platform/cache"
	qb "github.com/groupgrid/connections-tracker/internal/platform/querybuilder"
)

// ResultRepository persists submissions as a result row plus links to
// deduplicated cell definitions. The row and its links are written in
// one transaction so a stored result is always complete. The cell-def
// cache is owned here and only memoizes ids the database already
// confirmed; the unique index on (row_index, col_index, color) stays
// authoritative.
type ResultRepository struct {
	db       *sqlx.DB
	cellDefs *cache.Store
}

func NewResultRepository(db *sqlx.DB, cellDefs *cache.Store) *ResultRepository {
	if cellDefs == nil {
		cellDefs = cache.NewStore(0)
	}
	return &ResultRepository{db: db, cellDefs: cellDefs}
}

func (r *ResultRepository) InsertIfAbsent(ctx context.Context, item result.Result) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, fmt.Errorf("validate result: %w", err)
	}

	// Cell defs are a shared dictionary; resolve them before the
	// transaction so it only ever holds the result row and its links.
	cellIDs := make([]int64, 0, len(item.Grid)*result.RowWidth)
	for rowIdx, row := range item.Grid {
		for colIdx, color := range row {
			cellID, err := r.cellDefID(ctx, rowIdx, colIdx, int(color))
			if err != nil {
				return false, err
			}
			cellIDs = append(cellIDs, cellID)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin insert result tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := qb.InsertInto("puzzle_results").
		Columns("guild_id", "channel_id", "user_id", "submitted_at", "puzzle_number").
		Values(item.GuildID, item.ChannelID, item.UserID, item.Timestamp, item.PuzzleNumber).
		Suffix("ON CONFLICT (guild_id, user_id, puzzle_number) DO NOTHING RETURNING id").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build insert result query: %w", err)
	}

	var resultID int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&resultID); err != nil {
		if isNotFound(err) {
			// Already recorded for this (guild, user, puzzle).
			return false, nil
		}
		return false, fmt.Errorf("insert result: %w", err)
	}

	for _, cellID := range cellIDs {
		if err := linkCell(ctx, tx, resultID, cellID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit insert result: %w", err)
	}
	return true, nil
}

// cellDefID resolves the id of a (row, col, color) definition,
// inserting it on first sight. Concurrent inserts of the same triple
// race on the unique index; the loser re-reads the winner's row.
func (r *ResultRepository) cellDefID(ctx context.Context, rowIdx, colIdx, color int) (int64, error) {
	key := fmt.Sprintf("celldef:%d:%d:%d", rowIdx, colIdx, color)
	v, err := r.cellDefs.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		if id, found, err := r.selectCellDefID(ctx, rowIdx, colIdx, color); err != nil {
			return nil, err
		} else if found {
			return id, nil
		}

		query, args, err := qb.InsertInto("puzzle_cell_defs").
			Columns("row_index", "col_index", "color").
			Values(rowIdx, colIdx, color).
			Suffix("ON CONFLICT (row_index, col_index, color) DO NOTHING RETURNING id").
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build insert cell def query: %w", err)
		}

		var id int64
		if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err == nil {
			return id, nil
		} else if !isNotFound(err) {
			return nil, fmt.Errorf("insert cell def: %w", err)
		}

		// Lost the insert race: the triple exists now.
		id, found, err := r.selectCellDefID(ctx, rowIdx, colIdx, color)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("cell def (%d,%d,%d) missing after conflict", rowIdx, colIdx, color)
		}
		return id, nil
	})
	if err != nil {
		return 0, err
	}

	id, _ := v.(int64)
	return id, nil
}

func (r *ResultRepository) selectCellDefID(ctx context.Context, rowIdx, colIdx, color int) (int64, bool, error) {
	query, args, err := qb.Select("id").
		From("puzzle_cell_defs").
		Where(
			qb.Eq("row_index", rowIdx),
			qb.Eq("col_index", colIdx),
			qb.Eq("color", color),
		).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select cell def query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select cell def: %w", err)
	}
	return id, true, nil
}

func linkCell(ctx context.Context, tx *sqlx.Tx, resultID, cellID int64) error {
	query, args, err := qb.InsertInto("puzzle_result_cells").
		Columns("result_id", "cell_id").
		Values(resultID, cellID).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert result cell query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result cell: %w", err)
	}
	return nil
}

func (r *ResultRepository) ListCellRows(ctx context.Context, guildID string) ([]result.CellRow, error) {
	query, args, err := qb.Select(
		"r.user_id", "r.puzzle_number", "r.submitted_at",
		"d.row_index", "d.col_index", "d.color",
	).
		From("puzzle_result_cells rc JOIN puzzle_results r ON r.id = rc.result_id JOIN puzzle_cell_defs d ON d.id = rc.cell_id").
		Where(qb.Eq("r.guild_id", guildID)).
		OrderBy("r.user_id", "r.puzzle_number", "d.row_index", "d.col_index").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cell rows query: %w", err)
	}

	var rows []cellRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list cell rows: %w", err)
	}

	out := make([]result.CellRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.CellRow{
			UserID:       row.UserID,
			PuzzleNumber: row.PuzzleNumber,
			Timestamp:    row.SubmittedAt,
			Row:          row.RowIndex,
			Col:          row.ColIndex,
			Color:        result.Color(row.Color),
		})
	}
	return out, nil
}

func (r *ResultRepository) CountByGuild(ctx context.Context, guildID string) (int, int, error) {
	query, args, err := qb.Select("COUNT(*) AS results", "COUNT(DISTINCT user_id) AS players").
		From("puzzle_results").
		Where(qb.Eq("guild_id", guildID)).
		ToSQL()
	if err != nil {
		return 0, 0, fmt.Errorf("build count results query: %w", err)
	}

	var counts guildCountsModel
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		return 0, 0, fmt.Errorf("count results: %w", err)
	}
	return counts.Results, counts.Players, nil
}
