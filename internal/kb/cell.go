package kb

import (
	"fmt"
	"slices"
	"strings"
)

// Cell is a board coordinate. It is a plain value type so it can be
// copied freely and used as a map key.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

func cellCmp(a, b Cell) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Delete(c Cell) {
	delete(s, c)
}

func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out.Add(c)
	}
	return out
}

func (s CellSet) AddAll(other CellSet) {
	for c := range other {
		s.Add(c)
	}
}

// Diff returns s − other as a new set.
func (s CellSet) Diff(other CellSet) CellSet {
	out := make(CellSet)
	for c := range s {
		if !other.Has(c) {
			out.Add(c)
		}
	}
	return out
}

// CountIn returns the number of cells present in both s and other.
func (s CellSet) CountIn(other CellSet) (n int) {
	for c := range s {
		if other.Has(c) {
			n++
		}
	}
	return
}

// StrictSubsetOf reports whether s ⊂ other (proper subset, not equal).
func (s CellSet) StrictSubsetOf(other CellSet) bool {
	if len(s) >= len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// Sorted returns the cells in row-major order.
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, cellCmp)
	return cells
}

func (s CellSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range s.Sorted() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte('}')
	return b.String()
}
