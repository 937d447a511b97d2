package postgres

import "time"

type resultTableModel struct {
	ID           int64     `db:"id"`
	GuildID      string    `db:"guild_id"`
	ChannelID    string    `db:"channel_id"`
	UserID       string    `db:"user_id"`
	SubmittedAt  time.Time `db:"submitted_at"`
	PuzzleNumber int       `db:"puzzle_number"`
	CreatedAt    time.Time `db:"created_at"`
}

type cellDefTableModel struct {
	ID       int64 `db:"id"`
	RowIndex int   `db:"row_index"`
	ColIndex int   `db:"col_index"`
	Color    int   `db:"color"`
}

type cellRowModel struct {
	UserID       string    `db:"user_id"`
	PuzzleNumber int       `db:"puzzle_number"`
	SubmittedAt  time.Time `db:"submitted_at"`
	RowIndex     int       `db:"row_index"`
	ColIndex     int       `db:"col_index"`
	Color        int       `db:"color"`
}

type guildCountsModel struct {
	Results int `db:"results"`
	Players int `db:"players"`
}
