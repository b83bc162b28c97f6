package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/avolkova/minesweeper-agent/internal/board"
	"github.com/avolkova/minesweeper-agent/internal/kb"
)

var (
	ErrFinished = errors.New("session is already finished")
	ErrNoMoves  = errors.New("no moves available")
)

type Params struct {
	Height    int
	Width     int
	MineCount int
}

func (p Params) Validate() error {
	if p.Height <= 0 || p.Width <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.Height*p.Width {
		return fmt.Errorf("invalid mine count %d for %dx%d",
			p.MineCount, p.Width, p.Height)
	}
	return nil
}

// Move is one turn taken by the agent.
type Move struct {
	Cell  kb.Cell
	Guess bool // random fallback rather than a deduced-safe cell
	Mine  bool // the move hit a mine and ended the game
	Count int  // adjacent mine count reported by the board, -1 on a hit
}

type Outcome int8

const (
	Stalled Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "stalled"
	}
}

/*
Session plays an agent against a board one turn at a time and keeps the
full move log. Exported fields survive gob encoding so finished
sessions can be stored and replayed; the live board and agent do not,
a decoded session is replay-only.
*/
type Session struct {
	Params
	Grid         []bool // true mine layout, row-major
	Moves        []Move
	Dead, Won    bool
	SafesProven  int
	MinesProven  int
	GuessesTaken int
	StartedAt    time.Time
	EndedAt      *time.Time

	b     *board.Board
	agent *kb.Agent
}

func NewSession(params Params, r *rand.Rand) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b, err := board.New(params.Height, params.Width, params.MineCount, r)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Params:    params,
		StartedAt: time.Now().UTC(),
		b:         b,
		agent:     kb.NewAgent(params.Height, params.Width, r),
	}
	mines := b.Mines()
	s.Grid = make([]bool, params.Height*params.Width)
	for cell := range mines {
		s.Grid[cell.Row*params.Width+cell.Col] = true
	}
	return s, nil
}

func (s *Session) finish() {
	now := time.Now().UTC()
	s.EndedAt = &now
	s.SafesProven = len(s.agent.Safes())
	s.MinesProven = len(s.agent.Mines())
}

// Step plays one turn: a deduced-safe cell when one exists, otherwise
// a random unknown cell. Returns ErrNoMoves when neither policy can
// produce a cell and ErrFinished once the session is over.
func (s *Session) Step() (Move, error) {
	if s.Dead || s.Won {
		return Move{}, ErrFinished
	}
	if s.agent == nil {
		return Move{}, fmt.Errorf("session is replay-only")
	}

	cell, ok := s.agent.ChooseSafeMove()
	guess := false
	if !ok {
		cell, ok = s.agent.ChooseRandomMove()
		guess = true
	}
	if !ok {
		s.finish()
		return Move{}, ErrNoMoves
	}
	if guess {
		s.GuessesTaken++
	}

	if s.b.IsMine(cell) {
		s.Dead = true
		move := Move{Cell: cell, Guess: guess, Mine: true, Count: -1}
		s.Moves = append(s.Moves, move)
		s.finish()
		return move, nil
	}

	count := s.b.AdjacentMineCount(cell)
	if err := s.agent.Observe(cell, count); err != nil {
		return Move{}, fmt.Errorf("observation of %s broke the knowledge base: %w", cell, err)
	}
	if s.b.Won(s.agent.Mines()) {
		s.Won = true
		s.finish()
	}

	move := Move{Cell: cell, Guess: guess, Count: count}
	s.Moves = append(s.Moves, move)
	return move, nil
}

// Play runs the session until it is won, lost, or out of moves.
// maxMoves bounds runaway loops; zero means no bound.
func (s *Session) Play(maxMoves int) (Outcome, error) {
	for maxMoves <= 0 || len(s.Moves) < maxMoves {
		_, err := s.Step()
		if errors.Is(err, ErrNoMoves) || errors.Is(err, ErrFinished) {
			break
		}
		if err != nil {
			return Stalled, err
		}
	}
	if s.EndedAt == nil {
		s.finish()
	}
	return s.Outcome(), nil
}

func (s *Session) Outcome() Outcome {
	switch {
	case s.Won:
		return Won
	case s.Dead:
		return Lost
	default:
		return Stalled
	}
}

func (s *Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseSessionFromBytes(b []byte) (*Session, error) {
	var s Session
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
