package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/avolkova/minesweeper-agent/internal/game"
)

type Highscore struct {
	SolveRunID int64   `json:"solve_run_id"`
	Username   *string `json:"username"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	MineCount  int     `json:"mine_count"`
	Moves      int     `json:"moves"`
	Guesses    int     `json:"guesses"`
	PlaytimeMs float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username *string
	Params   *game.Params
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.Params.Width
		args["height"] = f.Params.Height
		args["mineCount"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// FetchHighscores lists won runs ordered by fewest guesses, then
// fewest moves, then playtime.
func (q *Queries) FetchHighscores(
	ctx context.Context, filter HighscoreFilter, limit int,
) ([]Highscore, error) {
	query := "SELECT * FROM highscore"
	where, args := filter.WhereClause()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY guesses ASC, moves ASC, playtime_ms ASC"
	if limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = limit
	}

	rows, _ := q.db.Query(ctx, query, args)
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
