package kb

import "fmt"

/*
KnowledgeBase accumulates everything the agent can prove about a grid:
cells known safe, cells known to be mines, moves already made, and an
ordered collection of unresolved constraints. Facts only ever move one
way (a cell, once proven, stays proven), and no cell can be both safe
and a mine.

All mutation goes through Observe, which runs deduction to a fixpoint
before returning. The type is not safe for concurrent use; the play
loop is strictly turn-based.
*/
type KnowledgeBase struct {
	height, width int

	movesMade CellSet
	safes     CellSet
	mines     CellSet

	constraints []*Constraint
}

func NewKnowledgeBase(height, width int) *KnowledgeBase {
	return &KnowledgeBase{
		height:    height,
		width:     width,
		movesMade: CellSet{},
		safes:     CellSet{},
		mines:     CellSet{},
	}
}

func (kb *KnowledgeBase) Height() int { return kb.height }
func (kb *KnowledgeBase) Width() int  { return kb.width }

// Safes returns a copy of the cells proven safe.
func (kb *KnowledgeBase) Safes() CellSet { return kb.safes.Clone() }

// Mines returns a copy of the cells proven to be mines.
func (kb *KnowledgeBase) Mines() CellSet { return kb.mines.Clone() }

// MovesMade returns a copy of the cells the agent has revealed.
func (kb *KnowledgeBase) MovesMade() CellSet { return kb.movesMade.Clone() }

// ConstraintCount returns the number of unresolved constraints.
func (kb *KnowledgeBase) ConstraintCount() int { return len(kb.constraints) }

func (kb *KnowledgeBase) InBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < kb.height && 0 <= c.Col && c.Col < kb.width
}

// DeclareMine records cell as a proven mine and scrubs it from every
// stored constraint. Calling it again for the same cell is a no-op.
func (kb *KnowledgeBase) DeclareMine(cell Cell) error {
	if kb.safes.Has(cell) {
		return ContradictionError{fmt.Sprintf(
			"cell %s is already proven safe, cannot be a mine", cell,
		)}
	}
	kb.mines.Add(cell)
	for _, c := range kb.constraints {
		c.RemoveAsMine(cell)
	}
	return nil
}

// DeclareSafe records cell as proven safe and scrubs it from every
// stored constraint. Calling it again for the same cell is a no-op.
func (kb *KnowledgeBase) DeclareSafe(cell Cell) error {
	if kb.mines.Has(cell) {
		return ContradictionError{fmt.Sprintf(
			"cell %s is already proven to be a mine, cannot be safe", cell,
		)}
	}
	kb.safes.Add(cell)
	for _, c := range kb.constraints {
		c.RemoveAsSafe(cell)
	}
	return nil
}

func (kb *KnowledgeBase) neighbors(cell Cell) CellSet {
	neighbors := CellSet{}
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{Row: cell.Row + dr, Col: cell.Col + dc}
			if kb.InBounds(n) {
				neighbors.Add(n)
			}
		}
	}
	return neighbors
}

/*
Observe ingests a report from the board: cell has been revealed and has
count mines among its grid neighbors. The cell itself must genuinely be
safe (the caller opened it and survived).

The observation is turned into a constraint over the still-unknown
neighbors, with mines already proven among the neighbors subtracted
from the reported count, and then deduction runs to a fixpoint.
*/
func (kb *KnowledgeBase) Observe(cell Cell, count int) error {
	if !kb.InBounds(cell) {
		return fmt.Errorf("cell %s is outside the %dx%d grid",
			cell, kb.width, kb.height)
	}

	kb.movesMade.Add(cell)
	if err := kb.DeclareSafe(cell); err != nil {
		return err
	}

	neighbors := kb.neighbors(cell)
	unknown := neighbors.Diff(kb.safes).Diff(kb.mines)
	adjusted := count - neighbors.CountIn(kb.mines)

	if len(unknown) > 0 {
		c, err := NewConstraint(unknown, adjusted)
		if err != nil {
			return err
		}
		kb.addUnlessKnown(c)
	}

	return kb.closure()
}

func (kb *KnowledgeBase) addUnlessKnown(c *Constraint) {
	key := c.Key()
	for _, existing := range kb.constraints {
		if existing.Key() == key {
			return
		}
	}
	kb.constraints = append(kb.constraints, c)
}

/*
closure runs deduction passes until one of them changes nothing. Each
pass is two-phase: facts are first collected from every constraint into
staging sets, then applied, so no collection is mutated while being
iterated. Empty constraints are pruned before the termination check so
that a contradictory leftover (empty cells, nonzero count) can never
survive a call.
*/
func (kb *KnowledgeBase) closure() error {
	for {
		/*
		 * Fact extraction: a constraint whose count equals its size
		 * proves all its cells mines; a count of zero proves them all
		 * safe.
		 */
		pendingMines := CellSet{}
		pendingSafes := CellSet{}
		for _, c := range kb.constraints {
			pendingMines.AddAll(c.ImpliedMines())
			pendingSafes.AddAll(c.ImpliedSafe())
		}
		newMines := pendingMines.Diff(kb.mines)
		newSafes := pendingSafes.Diff(kb.safes)

		/*
		 * Fact application. A cell implied to be both a mine and safe
		 * trips the mutual-exclusion check inside the declare calls.
		 */
		for cell := range newMines {
			if err := kb.DeclareMine(cell); err != nil {
				return err
			}
		}
		for cell := range newSafes {
			if err := kb.DeclareSafe(cell); err != nil {
				return err
			}
		}

		/*
		 * Pruning: constraints whittled down to nothing carry no
		 * information, unless their count is somehow nonzero, which
		 * means the inputs were inconsistent.
		 */
		kept := kb.constraints[:0]
		for _, c := range kb.constraints {
			if !c.Empty() {
				kept = append(kept, c)
				continue
			}
			if c.count != 0 {
				return ContradictionError{fmt.Sprintf(
					"constraint over no cells claims %d mines", c.count,
				)}
			}
		}
		kb.constraints = kept

		/*
		 * Resolution: for B ⊂ A, the cells of A outside B must hold
		 * exactly A.count − B.count mines. Duplicates of existing or
		 * just-derived constraints are suppressed by canonical key.
		 */
		seen := make(map[string]struct{}, len(kb.constraints))
		for _, c := range kb.constraints {
			seen[c.Key()] = struct{}{}
		}

		var derived []*Constraint
		for _, a := range kb.constraints {
			for _, b := range kb.constraints {
				if a == b || !b.cells.StrictSubsetOf(a.cells) {
					continue
				}
				rest := a.cells.Diff(b.cells)
				count := a.count - b.count
				if count < 0 {
					continue
				}
				c, err := NewConstraint(rest, count)
				if err != nil {
					return err
				}
				if _, dup := seen[c.Key()]; dup {
					continue
				}
				seen[c.Key()] = struct{}{}
				derived = append(derived, c)
			}
		}
		kb.constraints = append(kb.constraints, derived...)

		if len(newMines) == 0 && len(newSafes) == 0 && len(derived) == 0 {
			return nil
		}
	}
}
