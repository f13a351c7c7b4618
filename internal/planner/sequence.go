package planner

import "github.com/mkoskin/treeni/internal/training"

// NextPattern recommends the movement pattern to use next in a session given
// the patterns already chosen, in order. It keeps sessions balanced by
// rotating through the canonical pattern set: the pattern that has least
// recently appeared wins, with ties broken by canonical order. An empty
// history yields the first canonical pattern.
func NextPattern(used []training.MovementPattern) training.MovementPattern {
	patterns := training.MovementPatterns()

	chosen := patterns[0]
	chosenLast := len(used)
	for _, pattern := range patterns {
		last := -1
		for i, u := range used {
			if u == pattern {
				last = i
			}
		}
		if last < chosenLast {
			chosen = pattern
			chosenLast = last
		}
	}
	return chosen
}
