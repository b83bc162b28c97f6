package kb

// ContradictionError signals that an observation is inconsistent with
// previously established facts. Deduction past this point would be
// unsound, so the knowledge base refuses to continue.
type ContradictionError struct {
	message string
}

func (e ContradictionError) Error() string {
	return e.message
}
