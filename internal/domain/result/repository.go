package result

import "context"

// Repository describes result persistence needs from use cases.
type Repository interface {
	// InsertIfAbsent stores a submission unless the (guild, user,
	// puzzle) triple is already recorded. A duplicate is a no-op,
	// reported through the bool, never through the error.
	InsertIfAbsent(ctx context.Context, item Result) (bool, error)

	// ListCellRows returns every stored grid cell for a guild,
	// flattened, ordered by user, puzzle, row and column.
	ListCellRows(ctx context.Context, guildID string) ([]CellRow, error)

	// CountByGuild returns total stored results and distinct users.
	CountByGuild(ctx context.Context, guildID string) (int, int, error)
}
