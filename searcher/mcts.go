package searcher

import (
	"errors"
	"fmt"
	"math"

	"mcts/game"

	"github.com/rs/zerolog/log"
)

// ErrInvariantViolation reports an internal search invariant that should be
// unreachable through the public API, such as UCT selection over a successor
// that was never expanded or visited.
var ErrInvariantViolation = errors.New("invariant violation")

type Option func(m *MCTS)

// WithExploration sets the squared exploration constant of the UCT bonus.
func WithExploration(c2 float64) Option {
	return func(m *MCTS) {
		if c2 > 0 {
			m.exploration = c2
		}
	}
}

// WithMetrics attaches a live metrics collector to the engine.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

// MCTS accumulates Monte Carlo tree search statistics over the states it is
// asked to search: a visit count and a reward total per state, plus the
// memoized successors of every state expanded so far. Statistics grow
// monotonically for the engine's lifetime; nothing is ever evicted.
//
// Reward bookkeeping assumes a two-player, alternating-turn, zero-sum game
// with rewards in [0, 1]: a reward r credited at one ply is credited as 1-r
// one ply up. The engine is single-threaded; the caller drives the search
// budget by calling Rollout repeatedly before asking Choose for a move.
type MCTS struct {
	visits      map[game.State]int
	rewards     map[game.State]float64
	successors  map[game.State][]game.State
	exploration float64
	metrics     Collector
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		visits:      make(map[game.State]int),
		rewards:     make(map[game.State]float64),
		successors:  make(map[game.State][]game.State),
		exploration: DefaultExploration,
		metrics:     NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	m.metrics.Start()
	return m
}

// Visits returns the visit count of state, zero if never visited.
func (m *MCTS) Visits(state game.State) int {
	return m.visits[state]
}

// Rewards returns the accumulated reward of state, zero if never visited.
func (m *MCTS) Rewards(state game.State) float64 {
	return m.rewards[state]
}

// Expanded reports whether state's successors have been memoized.
func (m *MCTS) Expanded(state game.State) bool {
	_, ok := m.successors[state]
	return ok
}

// Metrics returns a snapshot of the work done by this engine so far.
func (m *MCTS) Metrics() SearchMetric {
	return m.metrics.Snapshot()
}

// Rollout runs one unit of search work from root: select a path down to the
// search frontier, memoize the frontier state's successors, play one random
// game from it, and credit the outcome back up the path.
func (m *MCTS) Rollout(root game.State) error {
	path, err := m.selectPath(root)
	if err != nil {
		return err
	}
	leaf := path[len(path)-1]
	m.expand(leaf)
	reward, err := m.simulate(leaf)
	if err != nil {
		return err
	}
	m.backpropagate(path, reward)
	m.metrics.AddRollout()
	return nil
}

// Choose returns the best immediate successor of root by average observed
// reward, with no exploration term. A successor never visited scores
// negative infinity, so it is only returned when every alternative is also
// unvisited; ties go to the earliest successor in memoized order. If root
// was never expanded there are no statistics to rank by and Choose degrades
// to a random successor.
func (m *MCTS) Choose(root game.State) (game.State, error) {
	if root.IsTerminal() {
		return nil, fmt.Errorf("choose called on terminal state: %w", game.ErrInvalidOperation)
	}

	succs, ok := m.successors[root]
	if !ok {
		log.Debug().Msg("choosing random successor of unexplored state")
		return root.RandomSuccessor()
	}
	if len(succs) == 0 {
		return nil, fmt.Errorf("non-terminal state memoized with no successors: %w", ErrInvariantViolation)
	}

	best := succs[0]
	bestScore := exploit(m.rewards[best], m.visits[best])
	for _, succ := range succs[1:] {
		if score := exploit(m.rewards[succ], m.visits[succ]); score > bestScore {
			best = succ
			bestScore = score
		}
	}
	return best, nil
}

// selectPath walks from root to the search frontier and returns the ordered
// path taken, root first. The frontier is the first state on the way down
// that is unexpanded or terminal, or the first unexpanded successor of a
// state whose other successors are all expanded. Fully expanded interior
// states are descended through UCT.
func (m *MCTS) selectPath(root game.State) ([]game.State, error) {
	var path []game.State
	node := root
	for {
		path = append(path, node)

		succs, expanded := m.successors[node]
		if !expanded || len(succs) == 0 {
			// Unexpanded or terminal: this is the leaf to expand and simulate
			return path, nil
		}

		if unexpanded, ok := m.firstUnexpanded(succs); ok {
			return append(path, unexpanded), nil
		}

		next, err := m.uctSelect(node, succs)
		if err != nil {
			return nil, err
		}
		node = next
	}
}

// firstUnexpanded returns the first successor, in memoized order, whose own
// successors have not been memoized yet.
func (m *MCTS) firstUnexpanded(succs []game.State) (game.State, bool) {
	for _, succ := range succs {
		if _, ok := m.successors[succ]; !ok {
			return succ, true
		}
	}
	return nil, false
}

// expand memoizes state's successors. Idempotent: re-expanding keeps the
// original successor slice untouched.
func (m *MCTS) expand(state game.State) {
	if _, ok := m.successors[state]; ok {
		return
	}
	m.successors[state] = state.Successors()
	m.metrics.AddExpansion()
}

// simulate plays uniformly random successors from leaf until the game ends
// and returns the terminal reward projected onto leaf's perspective. The
// parity flag starts inverted and toggles once per ply, so a terminal reward
// an even number of plies below leaf is complemented and an odd one is not.
func (m *MCTS) simulate(leaf game.State) (float64, error) {
	node := leaf
	invert := true
	steps := 0
	for !node.IsTerminal() {
		next, err := node.RandomSuccessor()
		if err != nil {
			return 0, err
		}
		node = next
		invert = !invert
		steps++
	}
	m.metrics.AddPlayout(steps)

	reward, err := node.Reward()
	if err != nil {
		return 0, err
	}
	if invert {
		reward = 1 - reward
	}
	return reward, nil
}

// backpropagate credits reward to every state on the path, leaf first,
// complementing it at each step up the path (zero-sum alternation).
func (m *MCTS) backpropagate(path []game.State, reward float64) {
	for i := len(path) - 1; i >= 0; i-- {
		state := path[i]
		m.visits[state]++
		m.rewards[state] += reward
		reward = 1 - reward
	}
}

// uctSelect picks the successor of state with the highest UCT score, ties
// going to the earliest in memoized order. Every successor must already be
// expanded and visited, and state itself visited; a violation returns
// ErrInvariantViolation instead of feeding a zero count into the score.
func (m *MCTS) uctSelect(state game.State, succs []game.State) (game.State, error) {
	n := m.visits[state]
	if n == 0 {
		return nil, fmt.Errorf("uct selection on unvisited state: %w", ErrInvariantViolation)
	}
	for _, succ := range succs {
		if _, ok := m.successors[succ]; !ok || m.visits[succ] == 0 {
			return nil, fmt.Errorf("uct selection over unexpanded or unvisited successor: %w", ErrInvariantViolation)
		}
	}

	c2LnN := m.exploration * math.Log(float64(n))

	best := succs[0]
	bestScore := uct(m.rewards[best], m.visits[best], c2LnN)
	for _, succ := range succs[1:] {
		if score := uct(m.rewards[succ], m.visits[succ], c2LnN); score > bestScore {
			best = succ
			bestScore = score
		}
	}
	return best, nil
}
