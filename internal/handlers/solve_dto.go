package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/avolkova/minesweeper-agent/internal/game"
	"github.com/avolkova/minesweeper-agent/internal/repository"
)

type SolveRequestDTO struct {
	Width     int     `schema:"width,required"`
	Height    int     `schema:"height,required"`
	MineCount int     `schema:"mine_count,required"`
	Seed      *uint64 `schema:"seed"`
	MaxMoves  int     `schema:"max_moves"`
}

func ParseSolveRequestDTO(src map[string][]string) (SolveRequestDTO, error) {
	var dto SolveRequestDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type HighscoreFilterDTO struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
}

func ParseHighscoreFilterDTO(src map[string][]string) (HighscoreFilterDTO, error) {
	var dto HighscoreFilterDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto HighscoreFilterDTO) Filter() repository.HighscoreFilter {
	filter := repository.HighscoreFilter{Username: dto.Username}
	if dto.Width != nil && dto.Height != nil && dto.MineCount != nil {
		filter.Params = &game.Params{
			Width:     *dto.Width,
			Height:    *dto.Height,
			MineCount: *dto.MineCount,
		}
	}
	return filter
}

type MoveDTO struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Guess bool `json:"guess"`
	Mine  bool `json:"mine"`
	Count int  `json:"count"`
}

type SolveRunDTO struct {
	SolveRunId  string    `json:"solve_run_id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	MineCount   int       `json:"mine_count"`
	Outcome     string    `json:"outcome"`
	Won         bool      `json:"won"`
	Dead        bool      `json:"dead"`
	Moves       []MoveDTO `json:"moves"`
	Guesses     int       `json:"guesses"`
	SafesProven int       `json:"safes_proven"`
	MinesProven int       `json:"mines_proven"`
	StartedAt   int64     `json:"started_at"`
	EndedAt     *int64    `json:"ended_at,omitempty"`
}

func NewSolveRunDTO(solveRunId int64, s *game.Session) *SolveRunDTO {
	moves := make([]MoveDTO, len(s.Moves))
	for i, m := range s.Moves {
		moves[i] = MoveDTO{
			Row:   m.Cell.Row,
			Col:   m.Cell.Col,
			Guess: m.Guess,
			Mine:  m.Mine,
			Count: m.Count,
		}
	}

	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}

	return &SolveRunDTO{
		SolveRunId:  strconv.FormatInt(solveRunId, 10),
		Width:       s.Width,
		Height:      s.Height,
		MineCount:   s.MineCount,
		Outcome:     s.Outcome().String(),
		Won:         s.Won,
		Dead:        s.Dead,
		Moves:       moves,
		Guesses:     s.GuessesTaken,
		SafesProven: s.SafesProven,
		MinesProven: s.MinesProven,
		StartedAt:   s.StartedAt.UnixMilli(),
		EndedAt:     endedAt,
	}
}
