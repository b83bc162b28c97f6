package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintImpliedMines(t *testing.T) {
	c, err := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}), 2)
	assert.NoError(t, err)
	assert.Equal(t, NewCellSet(Cell{0, 0}, Cell{0, 1}), c.ImpliedMines())
	assert.Equal(t, CellSet{}, c.ImpliedSafe())

	c, err = NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
	assert.NoError(t, err)
	assert.Equal(t, CellSet{}, c.ImpliedMines())
	assert.Equal(t, CellSet{}, c.ImpliedSafe())
}

func TestConstraintImpliedSafe(t *testing.T) {
	c, err := NewConstraint(NewCellSet(Cell{1, 1}, Cell{1, 2}), 0)
	assert.NoError(t, err)
	assert.Equal(t, NewCellSet(Cell{1, 1}, Cell{1, 2}), c.ImpliedSafe())
	assert.Equal(t, CellSet{}, c.ImpliedMines())
}

func TestConstraintRejectsBadCount(t *testing.T) {
	_, err := NewConstraint(NewCellSet(Cell{0, 0}), 2)
	assert.ErrorAs(t, err, &ContradictionError{})

	_, err = NewConstraint(NewCellSet(Cell{0, 0}), -1)
	assert.ErrorAs(t, err, &ContradictionError{})
}

func TestConstraintRemoveAsMine(t *testing.T) {
	c, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 2)

	c.RemoveAsMine(Cell{0, 1})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, NewCellSet(Cell{0, 0}, Cell{0, 2}), c.Cells())

	// absent cell is ignored
	c.RemoveAsMine(Cell{0, 1})
	c.RemoveAsMine(Cell{5, 5})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, NewCellSet(Cell{0, 0}, Cell{0, 2}), c.Cells())
}

func TestConstraintRemoveAsSafe(t *testing.T) {
	c, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 1)

	c.RemoveAsSafe(Cell{0, 0})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, NewCellSet(Cell{0, 1}, Cell{0, 2}), c.Cells())

	c.RemoveAsSafe(Cell{0, 0})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, NewCellSet(Cell{0, 1}, Cell{0, 2}), c.Cells())
}

func TestConstraintKey(t *testing.T) {
	a, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{1, 1}), 1)
	b, _ := NewConstraint(NewCellSet(Cell{1, 1}, Cell{0, 0}), 1)
	c, _ := NewConstraint(NewCellSet(Cell{1, 1}, Cell{0, 0}), 2)

	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Key(), c.Key())
	assert.False(t, a.Equal(c))
}

func TestCellSetStrictSubset(t *testing.T) {
	big := NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	small := NewCellSet(Cell{0, 0}, Cell{0, 1})

	assert.True(t, small.StrictSubsetOf(big))
	assert.False(t, big.StrictSubsetOf(small))
	assert.False(t, big.StrictSubsetOf(big))
	assert.False(t, NewCellSet(Cell{9, 9}).StrictSubsetOf(big))
}
