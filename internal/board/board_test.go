package board

import (
	"math/rand/v2"
	"testing"

	"github.com/avolkova/minesweeper-agent/internal/kb"
)

func TestNewPlacesExactMineCount(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	tests := []struct {
		name                      string
		height, width, mineCount int
	}{
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"16x30(99)", 16, 30, 99},
		{"no mines", 4, 4, 0},
	}

	for _, test := range tests {
		b, err := New(test.height, test.width, test.mineCount, r)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := len(b.Mines()); got != test.mineCount {
			t.Errorf("%s: placed %d mines, want %d", test.name, got, test.mineCount)
		}
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	if _, err := New(0, 5, 0, r); err == nil {
		t.Error("zero height accepted")
	}
	if _, err := New(5, 5, 25, r); err == nil {
		t.Error("fully mined board accepted")
	}
	if _, err := New(5, 5, -1, r); err == nil {
		t.Error("negative mine count accepted")
	}
}

func TestAdjacentMineCount(t *testing.T) {
	t.Parallel()

	b := &Board{height: 3, width: 3, mineCount: 2, grid: []bool{
		false, true, false,
		false, false, false,
		false, false, true,
	}}

	tests := []struct {
		cell kb.Cell
		want int
	}{
		{kb.Cell{Row: 0, Col: 0}, 1},
		{kb.Cell{Row: 1, Col: 1}, 2},
		{kb.Cell{Row: 2, Col: 0}, 0},
		{kb.Cell{Row: 1, Col: 2}, 2},
	}
	for _, test := range tests {
		if got := b.AdjacentMineCount(test.cell); got != test.want {
			t.Errorf("AdjacentMineCount(%s) = %d, want %d", test.cell, got, test.want)
		}
	}
}

func TestWon(t *testing.T) {
	t.Parallel()

	b := &Board{height: 2, width: 2, mineCount: 1, grid: []bool{
		false, false,
		false, true,
	}}

	if b.Won(kb.CellSet{}) {
		t.Error("empty flag set should not win")
	}
	if b.Won(kb.NewCellSet(kb.Cell{Row: 0, Col: 0})) {
		t.Error("wrong flag should not win")
	}
	if !b.Won(kb.NewCellSet(kb.Cell{Row: 1, Col: 1})) {
		t.Error("exact flag set should win")
	}
	if b.Won(kb.NewCellSet(kb.Cell{Row: 1, Col: 1}, kb.Cell{Row: 0, Col: 0})) {
		t.Error("extra flag should not win")
	}
}
