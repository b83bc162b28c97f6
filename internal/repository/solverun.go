package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/avolkova/minesweeper-agent/internal/game"
)

type SolveRun struct {
	SolveRunID  int64
	PlayerID    *int64
	Width       int
	Height      int
	MineCount   int
	Won         bool
	Dead        bool
	Moves       int
	Guesses     int
	SafesProven int
	MinesProven int
	State       []byte
	StartedAt   pgtype.Timestamptz
	EndedAt     pgtype.Timestamptz
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

// Session decodes the stored gob blob back into a replayable session.
func (r SolveRun) Session() (*game.Session, error) {
	return game.ParseSessionFromBytes(r.State)
}

type CreateSolveRunParams struct {
	PlayerID *int64
}

func (q *Queries) CreateSolveRun(
	ctx context.Context, s *game.Session, params CreateSolveRunParams,
) (*SolveRun, error) {
	state, err := s.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":        s.Width,
		"height":       s.Height,
		"mine_count":   s.MineCount,
		"won":          s.Won,
		"dead":         s.Dead,
		"moves":        len(s.Moves),
		"guesses":      s.GuessesTaken,
		"safes_proven": s.SafesProven,
		"mines_proven": s.MinesProven,
		"state":        state,
		"started_at":   s.StartedAt,
		"ended_at":     s.EndedAt,
		"player_id":    params.PlayerID, // nil pointer maps to NULL
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO solve_run (
			player_id, width, height, mine_count, won, dead,
			moves, guesses, safes_proven, mines_proven,
			state, started_at, ended_at
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @won, @dead,
			@moves, @guesses, @safes_proven, @mines_proven,
			@state, @started_at, @ended_at
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[SolveRun])
}

func (q *Queries) FetchSolveRun(
	ctx context.Context, solveRunId int64,
) (*SolveRun, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM solve_run WHERE solve_run_id = $1",
		solveRunId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[SolveRun])
}
