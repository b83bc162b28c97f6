package kb

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// checkInvariants asserts the properties that must hold in every
// reachable knowledge base state.
func checkInvariants(t *testing.T, kb *KnowledgeBase) {
	t.Helper()

	for cell := range kb.safes {
		if kb.mines.Has(cell) {
			t.Errorf("cell %s is both safe and a mine", cell)
		}
	}
	for _, c := range kb.constraints {
		if c.count < 0 || c.count > len(c.cells) {
			t.Errorf("constraint %s violates count bounds", c)
		}
		for cell := range c.cells {
			if kb.safes.Has(cell) || kb.mines.Has(cell) {
				t.Errorf("constraint %s contains resolved cell %s", c, cell)
			}
		}
	}
}

func TestDeclareMineIdempotent(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)
	c, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{1, 1}), 1)
	kb.constraints = append(kb.constraints, c)

	if err := kb.DeclareMine(Cell{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := kb.DeclareMine(Cell{0, 0}); err != nil {
		t.Fatal(err)
	}

	if !kb.mines.Equal(NewCellSet(Cell{0, 0})) {
		t.Errorf("mines = %s, want {0:0}", kb.mines)
	}
	if got := c.Cells(); !got.Equal(NewCellSet(Cell{0, 1}, Cell{1, 1})) {
		t.Errorf("constraint cells = %s after declare", got)
	}
	if c.Count() != 0 {
		t.Errorf("constraint count = %d, want 0", c.Count())
	}
	checkInvariants(t, kb)
}

func TestDeclareSafeIdempotent(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)
	c, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
	kb.constraints = append(kb.constraints, c)

	if err := kb.DeclareSafe(Cell{0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := kb.DeclareSafe(Cell{0, 1}); err != nil {
		t.Fatal(err)
	}

	if !kb.safes.Equal(NewCellSet(Cell{0, 1})) {
		t.Errorf("safes = %s, want {0:1}", kb.safes)
	}
	if c.Count() != 1 {
		t.Errorf("constraint count = %d, want 1", c.Count())
	}
	checkInvariants(t, kb)
}

func TestDeclareMutualExclusion(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)
	if err := kb.DeclareSafe(Cell{1, 1}); err != nil {
		t.Fatal(err)
	}

	err := kb.DeclareMine(Cell{1, 1})
	var contradiction ContradictionError
	if !errors.As(err, &contradiction) {
		t.Fatalf("DeclareMine on a safe cell returned %v, want contradiction", err)
	}
}

func TestObserveZeroCountMarksNeighborsSafe(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)
	if err := kb.Observe(Cell{0, 0}, 0); err != nil {
		t.Fatal(err)
	}

	want := NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1})
	if !kb.safes.Equal(want) {
		t.Errorf("safes = %s, want %s", kb.safes, want)
	}
	if !kb.movesMade.Equal(NewCellSet(Cell{0, 0})) {
		t.Errorf("movesMade = %s, want {0:0}", kb.movesMade)
	}
	if kb.ConstraintCount() != 0 {
		t.Errorf("%d constraints left, want none", kb.ConstraintCount())
	}
	checkInvariants(t, kb)
}

func TestObserveFullCountMarksNeighborsMines(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(2, 2)
	if err := kb.Observe(Cell{0, 0}, 3); err != nil {
		t.Fatal(err)
	}

	want := NewCellSet(Cell{0, 1}, Cell{1, 0}, Cell{1, 1})
	if !kb.mines.Equal(want) {
		t.Errorf("mines = %s, want %s", kb.mines, want)
	}
	checkInvariants(t, kb)
}

func TestObserveSubtractsKnownMines(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(2, 3)
	if err := kb.DeclareMine(Cell{1, 0}); err != nil {
		t.Fatal(err)
	}

	// (1,0) is a known mine neighboring (0,1); a report of 1 is fully
	// explained by it, so the remaining neighbors come out safe.
	if err := kb.Observe(Cell{0, 1}, 1); err != nil {
		t.Fatal(err)
	}

	for _, cell := range []Cell{{0, 0}, {0, 2}, {1, 1}, {1, 2}} {
		if !kb.safes.Has(cell) {
			t.Errorf("cell %s not proven safe", cell)
		}
	}
	checkInvariants(t, kb)
}

func TestObserveOutOfBounds(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)
	if err := kb.Observe(Cell{3, 0}, 0); err == nil {
		t.Error("expected an error for an out-of-bounds observation")
	}
}

func TestSubsetResolution(t *testing.T) {
	t.Parallel()

	// A = {a b c} with 2 mines, B = {a b} with 1: the difference {c}
	// must hold exactly one mine.
	kb := NewKnowledgeBase(1, 3)
	a, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 2)
	b, _ := NewConstraint(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
	kb.constraints = append(kb.constraints, a, b)

	if err := kb.closure(); err != nil {
		t.Fatal(err)
	}

	if !kb.mines.Has(Cell{0, 2}) {
		t.Errorf("mines = %s, want 0:2 proven", kb.mines)
	}
	checkInvariants(t, kb)
}

func TestClosureIsIdempotent(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)
	if err := kb.Observe(Cell{1, 1}, 2); err != nil {
		t.Fatal(err)
	}

	safes, mines := kb.Safes(), kb.Mines()
	n := kb.ConstraintCount()

	if err := kb.closure(); err != nil {
		t.Fatal(err)
	}

	if !kb.safes.Equal(safes) || !kb.mines.Equal(mines) || kb.ConstraintCount() != n {
		t.Error("second closure with no new observation changed state")
	}
}

func TestDuplicateConstraintSuppressed(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(4, 4)
	if err := kb.Observe(Cell{0, 0}, 2); err != nil {
		t.Fatal(err)
	}
	n := kb.ConstraintCount()
	if err := kb.Observe(Cell{0, 0}, 2); err != nil {
		t.Fatal(err)
	}
	if kb.ConstraintCount() != n {
		t.Errorf("duplicate observation grew constraints from %d to %d",
			n, kb.ConstraintCount())
	}
}

func TestContradictoryObservation(t *testing.T) {
	t.Parallel()

	// 1x4 strip: (0,0) reports its only neighbor (0,1) to be a mine,
	// then (0,2) reports zero adjacent mines, which cannot be.
	kb := NewKnowledgeBase(1, 4)
	if err := kb.Observe(Cell{0, 0}, 1); err != nil {
		t.Fatal(err)
	}
	if !kb.mines.Has(Cell{0, 1}) {
		t.Fatal("cell 0:1 not proven mine")
	}

	err := kb.Observe(Cell{0, 2}, 0)
	var contradiction ContradictionError
	if !errors.As(err, &contradiction) {
		t.Fatalf("inconsistent observation returned %v, want contradiction", err)
	}
}

func TestEmptyConstraintWithNonzeroCount(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(1, 4)
	c, _ := NewConstraint(NewCellSet(Cell{0, 3}), 1)
	kb.constraints = append(kb.constraints, c)

	// Scrubbing the last cell as safe leaves an unsatisfiable husk
	// that the next closure pass must report.
	if err := kb.DeclareSafe(Cell{0, 3}); err != nil {
		t.Fatal(err)
	}
	err := kb.closure()
	var contradiction ContradictionError
	if !errors.As(err, &contradiction) {
		t.Fatalf("closure returned %v, want contradiction", err)
	}
}

// Full 3x3 scenario with a single mine at (2,2). Observing the safe
// cells narrows the knowledge base until the mine is proven.
func TestEndToEndSingleMine(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase(3, 3)

	if err := kb.Observe(Cell{0, 0}, 0); err != nil {
		t.Fatal(err)
	}
	for _, cell := range []Cell{{0, 1}, {1, 0}, {1, 1}} {
		if !kb.safes.Has(cell) {
			t.Fatalf("cell %s not proven safe after corner observation", cell)
		}
	}

	if err := kb.Observe(Cell{1, 1}, 1); err != nil {
		t.Fatal(err)
	}
	if kb.ConstraintCount() != 1 {
		t.Fatalf("%d constraints after (1,1), want 1", kb.ConstraintCount())
	}
	if kb.mines.Has(Cell{2, 2}) {
		t.Fatal("mine proven too early")
	}

	if err := kb.Observe(Cell{2, 0}, 0); err != nil {
		t.Fatal(err)
	}
	if err := kb.Observe(Cell{0, 2}, 0); err != nil {
		t.Fatal(err)
	}

	if !kb.mines.Equal(NewCellSet(Cell{2, 2})) {
		t.Errorf("mines = %s, want exactly {2:2}", kb.mines)
	}
	checkInvariants(t, kb)
}

// Soundness sweep: on random boards, every fact the knowledge base
// proves must agree with the ground truth that produced the counts.
func TestSoundnessOnRandomBoards(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	const (
		height, width = 8, 8
		mineCount     = 10
		rounds        = 50
	)

	r := rand.New(rand.NewPCG(1, 2))

	for range rounds {
		truth := make(map[Cell]bool)
		for len(truth) < mineCount {
			truth[Cell{r.IntN(height), r.IntN(width)}] = true
		}

		adjacent := func(c Cell) (n int) {
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if truth[Cell{c.Row + dr, c.Col + dc}] {
						n++
					}
				}
			}
			return
		}

		var safeCells []Cell
		for row := range height {
			for col := range width {
				if c := (Cell{row, col}); !truth[c] {
					safeCells = append(safeCells, c)
				}
			}
		}
		r.Shuffle(len(safeCells), func(i, j int) {
			safeCells[i], safeCells[j] = safeCells[j], safeCells[i]
		})

		kb := NewKnowledgeBase(height, width)
		for _, cell := range safeCells {
			if err := kb.Observe(cell, adjacent(cell)); err != nil {
				t.Fatalf("observe %s: %v", cell, err)
			}
			checkInvariants(t, kb)
		}

		for cell := range kb.mines {
			if !truth[cell] {
				t.Errorf("cell %s proven mine but is safe", cell)
			}
		}
		for cell := range kb.safes {
			if truth[cell] {
				t.Errorf("cell %s proven safe but is a mine", cell)
			}
		}
	}
}
