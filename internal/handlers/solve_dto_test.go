package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkova/minesweeper-agent/internal/game"
)

func TestParseSolveRequestDTO(t *testing.T) {
	query, _ := url.ParseQuery("width=9&height=9&mine_count=10&extra=1")
	dto, err := ParseSolveRequestDTO(query)
	assert.NoError(t, err)
	assert.Equal(t, 9, dto.Width)
	assert.Equal(t, 9, dto.Height)
	assert.Equal(t, 10, dto.MineCount)
	assert.Nil(t, dto.Seed)

	query, _ = url.ParseQuery("width=9&height=9&mine_count=10&seed=42")
	dto, err = ParseSolveRequestDTO(query)
	assert.NoError(t, err)
	if assert.NotNil(t, dto.Seed) {
		assert.Equal(t, uint64(42), *dto.Seed)
	}

	_, err = ParseSolveRequestDTO(url.Values{"width": {"9"}})
	assert.Error(t, err)
}

func TestHighscoreFilterDTO(t *testing.T) {
	query, _ := url.ParseQuery("username=ada&width=9&height=9&mine_count=10")
	dto, err := ParseHighscoreFilterDTO(query)
	assert.NoError(t, err)

	filter := dto.Filter()
	if assert.NotNil(t, filter.Username) {
		assert.Equal(t, "ada", *filter.Username)
	}
	assert.Equal(t, &game.Params{Width: 9, Height: 9, MineCount: 10}, filter.Params)

	// board filter only applies when fully specified
	query, _ = url.ParseQuery("width=9")
	dto, err = ParseHighscoreFilterDTO(query)
	assert.NoError(t, err)
	assert.Nil(t, dto.Filter().Params)
}

func TestNewSolveRunDTO(t *testing.T) {
	s := &game.Session{
		Params: game.Params{Width: 3, Height: 3, MineCount: 1},
		Moves: []game.Move{
			{Cell: kbCell(0, 0), Count: 0},
			{Cell: kbCell(2, 2), Guess: true, Mine: true, Count: -1},
		},
		Dead:         true,
		GuessesTaken: 1,
	}

	dto := NewSolveRunDTO(7, s)
	assert.Equal(t, "7", dto.SolveRunId)
	assert.Equal(t, "lost", dto.Outcome)
	assert.Len(t, dto.Moves, 2)
	assert.True(t, dto.Moves[1].Mine)
	assert.Nil(t, dto.EndedAt)
}
