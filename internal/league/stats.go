package league

// ApplyMatch folds one match into the registry, registering either player
// on first appearance.
func ApplyMatch(r *Registry, m Match) error {
	p1, err := r.FindOrCreate(m.Player1)
	if err != nil {
		return err
	}
	p2, err := r.FindOrCreate(m.Player2)
	if err != nil {
		return err
	}
	if m.Player1Won() {
		r.RecordOutcome(p1, p2)
	} else {
		r.RecordOutcome(p2, p1)
	}
	return nil
}

// Rebuild replays matches, in order, into r. r should be empty; the same
// matches always produce the same registry.
func Rebuild(r *Registry, matches []Match) error {
	for _, m := range matches {
		if err := ApplyMatch(r, m); err != nil {
			return err
		}
	}
	return nil
}
