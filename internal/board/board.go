package board

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/avolkova/minesweeper-agent/internal/kb"
)

// Board is the ground truth the agent plays against: a hidden grid of
// mines. It answers adjacency queries but never leaks mine positions
// to the inference side.
type Board struct {
	height, width int
	grid          []bool
	mineCount     int
}

func New(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", width, height)
	}
	if mineCount < 0 || mineCount >= height*width {
		return nil, fmt.Errorf(
			"cannot place %d mines on a %dx%d board", mineCount, width, height,
		)
	}

	b := &Board{
		height:    height,
		width:     width,
		grid:      make([]bool, height*width),
		mineCount: mineCount,
	}

	placed := 0
	for placed < mineCount {
		i := r.IntN(len(b.grid))
		if !b.grid[i] {
			b.grid[i] = true
			placed++
		}
	}

	return b, nil
}

func (b *Board) Height() int    { return b.height }
func (b *Board) Width() int     { return b.width }
func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) InBounds(c kb.Cell) bool {
	return 0 <= c.Row && c.Row < b.height && 0 <= c.Col && c.Col < b.width
}

func (b *Board) IsMine(c kb.Cell) bool {
	return b.InBounds(c) && b.grid[c.Row*b.width+c.Col]
}

// AdjacentMineCount returns the number of mines within one row and
// column of c, not counting c itself.
func (b *Board) AdjacentMineCount(c kb.Cell) (count int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.IsMine(kb.Cell{Row: c.Row + dr, Col: c.Col + dc}) {
				count++
			}
		}
	}
	return
}

// Mines returns a copy of the true mine set.
func (b *Board) Mines() kb.CellSet {
	mines := kb.CellSet{}
	for i, mined := range b.grid {
		if mined {
			mines.Add(kb.Cell{Row: i / b.width, Col: i % b.width})
		}
	}
	return mines
}

// Won reports whether flagged matches the true mine set exactly.
func (b *Board) Won(flagged kb.CellSet) bool {
	return flagged.Equal(b.Mines())
}

func (b *Board) String() string {
	var s strings.Builder
	for row := range b.height {
		for col := range b.width {
			if b.grid[row*b.width+col] {
				fmt.Fprint(&s, "* ")
			} else {
				fmt.Fprint(&s, "- ")
			}
		}
		fmt.Fprint(&s, "\n")
	}
	return s.String()
}
