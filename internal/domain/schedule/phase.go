package schedule

// PhaseRules describes how a competition orders its phases and which phases share a record.
type PhaseRules struct {
	Order  map[string]int
	Groups map[string]string
}

// Rank returns the phase position. Unknown phases sort after every known phase.
func (r PhaseRules) Rank(phase string) int {
	if rank, ok := r.Order[phase]; ok {
		return rank
	}
	last := -1
	for _, rank := range r.Order {
		if rank > last {
			last = rank
		}
	}
	return last + 1
}

// GroupOf returns the phase group, or the phase itself when it is not mapped.
func (r PhaseRules) GroupOf(phase string) string {
	if group, ok := r.Groups[phase]; ok {
		return group
	}
	return phase
}
