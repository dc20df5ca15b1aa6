package game

import "errors"

// ErrInvalidOperation reports a method invoked outside its documented
// precondition, such as asking a terminal state for a random successor or a
// non-terminal state for its reward.
var ErrInvalidOperation = errors.New("invalid operation")

// State is one decision point of a two-player, zero-sum, perfect-information
// game: a position plus whose turn it is. The search engine consumes states
// through this contract only and never constructs one itself.
//
// Implementations must be immutable comparable values: the engine keys its
// statistics maps by State, so two states that are == must be interchangeable
// for all search purposes, and a state must never change after creation.
type State interface {
	// Successors returns every state reachable by one legal move, empty iff
	// the state is terminal. The engine memoizes the returned slice and
	// breaks ties by its order, so the order should be stable across calls.
	Successors() []State

	// RandomSuccessor samples one successor uniformly at random. Calling it
	// on a terminal state is an error wrapping ErrInvalidOperation.
	RandomSuccessor() (State, error)

	// IsTerminal reports whether the game is over at this state.
	IsTerminal() bool

	// Reward scores a terminal state for the player who is about to move at
	// it, in [0, 1]. Calling it on a non-terminal state is an error wrapping
	// ErrInvalidOperation.
	Reward() (float64, error)
}
