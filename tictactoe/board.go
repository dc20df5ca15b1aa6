package tictactoe

import (
	"fmt"
	"strings"

	"mcts/game"

	"golang.org/x/exp/rand"
)

const Size = 3

// Rewards from the perspective of the player about to move at a terminal
// board.
const (
	LossReward = 0.0
	TieReward  = 0.5
	WinReward  = 1.0
)

type Piece uint8

const (
	Empty Piece = iota
	X
	O
)

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "_"
	}
}

func (p Piece) Opponent() Piece {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Board is one tic-tac-toe position: the cells in row-major order plus whose
// turn it is. Boards are immutable values derived only through Move, so they
// are comparable and serve directly as statistics-store keys.
type Board struct {
	cells    [Size * Size]Piece
	turn     Piece
	winner   Piece
	terminal bool
}

// New returns an empty board with X to move.
func New() Board {
	return Board{turn: X}
}

func (b Board) Turn() Piece {
	return b.turn
}

// Winner returns the winning piece, Empty while the game is running or tied.
func (b Board) Winner() Piece {
	return b.winner
}

func (b Board) Cell(index int) Piece {
	return b.cells[index]
}

// Index converts a 0-based row and column to a cell index.
func Index(row, col int) int {
	return row*Size + col
}

// Seed seeds the generator behind RandomSuccessor for reproducible games.
func Seed(seed uint64) {
	rand.Seed(seed)
}

// Move derives the board after the current player plays at index.
func (b Board) Move(index int) (Board, error) {
	if b.terminal {
		return Board{}, fmt.Errorf("move on a terminal board: %w", game.ErrInvalidOperation)
	}
	if index < 0 || index >= len(b.cells) {
		return Board{}, fmt.Errorf("move index %d out of range: %w", index, game.ErrInvalidOperation)
	}
	if b.cells[index] != Empty {
		return Board{}, fmt.Errorf("cell %d is already taken: %w", index, game.ErrInvalidOperation)
	}

	next := b
	next.cells[index] = b.turn
	next.turn = b.turn.Opponent()
	next.winner = findWinner(next.cells)
	next.terminal = next.winner != Empty || full(next.cells)
	return next, nil
}

// Successors returns the boards reachable by playing each empty cell, in
// ascending cell order.
func (b Board) Successors() []game.State {
	if b.terminal {
		return nil
	}
	succs := make([]game.State, 0, len(b.cells))
	for i, cell := range b.cells {
		if cell != Empty {
			continue
		}
		next, err := b.Move(i)
		if err != nil {
			panic(err) // An empty cell on a non-terminal board is always playable
		}
		succs = append(succs, next)
	}
	return succs
}

// RandomSuccessor plays one uniformly random move.
func (b Board) RandomSuccessor() (game.State, error) {
	if b.terminal {
		return nil, fmt.Errorf("random successor of a terminal board: %w", game.ErrInvalidOperation)
	}
	empty := make([]int, 0, len(b.cells))
	for i, cell := range b.cells {
		if cell == Empty {
			empty = append(empty, i)
		}
	}
	return b.Move(empty[rand.Intn(len(empty))])
}

func (b Board) IsTerminal() bool {
	return b.terminal
}

// Reward scores a terminal board for the player about to move on it: 0 when
// the opponent has just completed a line, 0.5 for a tie. A board where the
// mover's own line is already complete is unreachable through legal play.
func (b Board) Reward() (float64, error) {
	if !b.terminal {
		return 0, fmt.Errorf("reward of a non-terminal board: %w", game.ErrInvalidOperation)
	}
	switch b.winner {
	case Empty:
		return TieReward, nil
	case b.turn.Opponent():
		return LossReward, nil
	default:
		return 0, fmt.Errorf("reward of a board already won by the mover: %w", game.ErrInvalidOperation)
	}
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n  ")
	for col := 1; col <= Size; col++ {
		fmt.Fprintf(&sb, "%d ", col)
	}
	sb.WriteString("\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < Size; col++ {
			sb.WriteString(" " + b.cells[Index(row, col)].String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

func findWinner(cells [Size * Size]Piece) Piece {
	for _, line := range lines {
		first := cells[line[0]]
		if first != Empty && cells[line[1]] == first && cells[line[2]] == first {
			return first
		}
	}
	return Empty
}

func full(cells [Size * Size]Piece) bool {
	for _, cell := range cells {
		if cell == Empty {
			return false
		}
	}
	return true
}
