package kb

import (
	"fmt"
	"strings"
)

/*
A Constraint is a logical statement about the board: exactly `count` of
the cells in `cells` are mines. Constraints are created from
observations and shrink in place as cells become known, until their
cell set empties out and they are pruned.

The invariant 0 <= count <= len(cells) holds for every stored
constraint; an input that would break it is a contradiction, not a
valid constraint.
*/
type Constraint struct {
	cells CellSet
	count int
}

func NewConstraint(cells CellSet, count int) (*Constraint, error) {
	if count < 0 || count > len(cells) {
		return nil, ContradictionError{fmt.Sprintf(
			"constraint %s = %d is unsatisfiable", cells, count,
		)}
	}
	return &Constraint{cells: cells.Clone(), count: count}, nil
}

func (c *Constraint) Count() int {
	return c.count
}

func (c *Constraint) Cells() CellSet {
	return c.cells.Clone()
}

func (c *Constraint) Empty() bool {
	return len(c.cells) == 0
}

// ImpliedMines returns every cell of the constraint if all of them
// must be mines, else an empty set.
func (c *Constraint) ImpliedMines() CellSet {
	if len(c.cells) > 0 && c.count == len(c.cells) {
		return c.cells.Clone()
	}
	return CellSet{}
}

// ImpliedSafe returns every cell of the constraint if none of them can
// be a mine, else an empty set.
func (c *Constraint) ImpliedSafe() CellSet {
	if len(c.cells) > 0 && c.count == 0 {
		return c.cells.Clone()
	}
	return CellSet{}
}

// RemoveAsMine drops cell from the constraint given that it is known
// to be a mine, decrementing the mine count. No-op if cell is not a
// member.
func (c *Constraint) RemoveAsMine(cell Cell) {
	if c.cells.Has(cell) {
		c.cells.Delete(cell)
		c.count--
	}
}

// RemoveAsSafe drops cell from the constraint given that it is known
// to be safe. The mine count is unchanged. No-op if cell is not a
// member.
func (c *Constraint) RemoveAsSafe(cell Cell) {
	c.cells.Delete(cell)
}

// Key returns a canonical form of the constraint, equal for any two
// constraints with the same cell set and count.
func (c *Constraint) Key() string {
	var b strings.Builder
	for _, cell := range c.cells.Sorted() {
		b.WriteString(cell.String())
		b.WriteByte(',')
	}
	fmt.Fprintf(&b, "=%d", c.count)
	return b.String()
}

func (c *Constraint) Equal(other *Constraint) bool {
	return c.count == other.count && c.cells.Equal(other.cells)
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s = %d", c.cells, c.count)
}
