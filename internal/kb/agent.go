package kb

import "math/rand/v2"

/*
Agent is the move-selection layer on top of a KnowledgeBase. It always
prefers a cell proven safe; when deduction has nothing to offer it
falls back to a uniformly random cell that is neither a proven mine
nor already played.

The random source is injected so tests can substitute a seeded one.
*/
type Agent struct {
	kb  *KnowledgeBase
	rnd *rand.Rand
}

func NewAgent(height, width int, rnd *rand.Rand) *Agent {
	return &Agent{
		kb:  NewKnowledgeBase(height, width),
		rnd: rnd,
	}
}

// Observe feeds a board report into the knowledge base. See
// [KnowledgeBase.Observe].
func (a *Agent) Observe(cell Cell, count int) error {
	return a.kb.Observe(cell, count)
}

// ChooseSafeMove returns a cell proven safe that has not been played
// yet. It never mutates state; which eligible cell is returned is
// unspecified.
func (a *Agent) ChooseSafeMove() (Cell, bool) {
	for cell := range a.kb.safes {
		if !a.kb.movesMade.Has(cell) {
			return cell, true
		}
	}
	return Cell{}, false
}

// ChooseRandomMove returns a uniformly random cell that is not a
// proven mine and has not been played. The second return is false when
// no such cell remains.
func (a *Agent) ChooseRandomMove() (Cell, bool) {
	var candidates []Cell
	for row := range a.kb.height {
		for col := range a.kb.width {
			cell := Cell{Row: row, Col: col}
			if !a.kb.mines.Has(cell) && !a.kb.movesMade.Has(cell) {
				candidates = append(candidates, cell)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}

func (a *Agent) Safes() CellSet     { return a.kb.Safes() }
func (a *Agent) Mines() CellSet     { return a.kb.Mines() }
func (a *Agent) MovesMade() CellSet { return a.kb.MovesMade() }
