package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mcts/searcher"
	"mcts/tictactoe"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	rollouts := flag.Int("rollouts", 200, "search rollouts per engine turn")
	seed := flag.Uint64("seed", 0, "playout random seed, 0 seeds from the clock")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	tictactoe.Seed(*seed)

	if err := play(*rollouts); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

// play runs one human-vs-engine game. The human is X and moves first; the
// engine trains as it goes, searching a fixed number of rollouts per turn.
func play(rollouts int) error {
	engine := searcher.NewMCTS(searcher.WithMetrics())
	board := tictactoe.New()
	reader := bufio.NewReader(os.Stdin)
	output := termenv.NewOutput(os.Stdout)

	render(output, board)

	for !board.IsTerminal() {
		next, err := humanMove(reader, board)
		if err != nil {
			return err
		}
		board = next
		render(output, board)
		if board.IsTerminal() {
			break
		}

		for i := 0; i < rollouts; i++ {
			if err := engine.Rollout(board); err != nil {
				return err
			}
		}
		chosen, err := engine.Choose(board)
		if err != nil {
			return err
		}
		board = chosen.(tictactoe.Board)
		log.Debug().Int("visits", engine.Visits(board)).Msg("engine moved")
		render(output, board)
	}

	metric := engine.Metrics()
	log.Info().
		Int("rollouts", metric.Rollouts).
		Int("expansions", metric.Expansions).
		Dur("duration", metric.Duration).
		Msg("search totals")

	if board.Winner() == tictactoe.Empty {
		fmt.Println("Tie")
	} else {
		fmt.Printf("%s wins!\n", board.Winner())
	}
	return nil
}

// humanMove prompts until it reads a legal 1-based row,col move.
func humanMove(reader *bufio.Reader, board tictactoe.Board) (tictactoe.Board, error) {
	for {
		fmt.Print("enter row,col: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return tictactoe.Board{}, err
		}

		var row, col int
		if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d,%d", &row, &col); err != nil {
			fmt.Println("Expected input like 1,3")
			continue
		}
		if row < 1 || row > tictactoe.Size || col < 1 || col > tictactoe.Size {
			fmt.Printf("Row and column must be between 1 and %d\n", tictactoe.Size)
			continue
		}

		next, err := board.Move(tictactoe.Index(row-1, col-1))
		if err != nil {
			fmt.Println("Invalid move, spot already taken")
			continue
		}
		return next, nil
	}
}

// render prints the board with colored pieces.
func render(output *termenv.Output, board tictactoe.Board) {
	profile := output.ColorProfile()
	pieceX := output.String("X").Foreground(profile.Color("1")).Bold().String()
	pieceO := output.String("O").Foreground(profile.Color("4")).Bold().String()

	var sb strings.Builder
	sb.WriteString("\n  ")
	for col := 1; col <= tictactoe.Size; col++ {
		fmt.Fprintf(&sb, "%d ", col)
	}
	sb.WriteString("\n")
	for row := 0; row < tictactoe.Size; row++ {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < tictactoe.Size; col++ {
			sb.WriteString(" ")
			switch board.Cell(tictactoe.Index(row, col)) {
			case tictactoe.X:
				sb.WriteString(pieceX)
			case tictactoe.O:
				sb.WriteString(pieceO)
			default:
				sb.WriteString("_")
			}
		}
		sb.WriteString("\n")
	}
	output.WriteString(sb.String())
}
