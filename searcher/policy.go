package searcher

import "math"

// Hyperparameters for MCTS

// DefaultExploration is the squared exploration constant c^2, giving the
// plain sqrt(ln(N)/n) UCT bonus.
const DefaultExploration = 1.0

// uct scores a successor during selection: average reward plus an
// exploration bonus that shrinks with the successor's own visits.
// c2LnN is c^2 * ln(parent visits), precomputed once per selection.
func uct(rewards float64, visits int, c2LnN float64) float64 {
	if visits == 0 {
		panic("cannot compute UCT: 0 visits")
	}
	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// exploit scores a successor for the final move choice: average reward only.
// Unvisited successors score negative infinity so they are never preferred
// over a visited alternative.
func exploit(rewards float64, visits int) float64 {
	if visits == 0 {
		return math.Inf(-1)
	}
	return rewards / float64(visits)
}
