package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/searcher"
	"mancala/utils"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNoLegalMoves = errors.New("no legal moves")

type SolverAgent struct {
	Solver *searcher.Solver
}

func NewSolverAgent(solver *searcher.Solver) *SolverAgent {
	return &SolverAgent{Solver: solver}
}

// FindMove plays the solver's pick. A search cut off by the node limit still yields
// the best pit from the partial statistics.
func (a *SolverAgent) FindMove(board *game.Board, session *game.Session) (int, metrics.SearchMetric, error) {
	pit, _ := a.Solver.Solve(board, session)
	if a.Solver.Exceeded() {
		log.Warn().Msgf("solver hit the node limit, playing pit %d from partial statistics", pit)
	}
	return pit, a.Solver.Metrics(), nil
}

// RandomAgent plays a uniformly random legal pit.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(board *game.Board, session *game.Session) (int, metrics.SearchMetric, error) {
	legal := session.LegalPits(board)
	if len(legal) == 0 {
		return 0, metrics.SearchMetric{}, ErrNoLegalMoves
	}
	pit := legal[a.rng.Intn(len(legal))]
	return pit, metrics.SearchMetric{Pit: pit}, nil
}

// ConsoleAgent asks a human for a pit, re-prompting until a legal pit is entered.
// Typing "hint" asks the optional solver for a recommendation.
type ConsoleAgent struct {
	in     *bufio.Scanner
	out    io.Writer
	hinter *searcher.Solver
}

func NewConsoleAgent(in io.Reader, out io.Writer, hinter *searcher.Solver) *ConsoleAgent {
	return &ConsoleAgent{in: bufio.NewScanner(in), out: out, hinter: hinter}
}

func (a *ConsoleAgent) FindMove(board *game.Board, session *game.Session) (int, metrics.SearchMetric, error) {
	legal := session.LegalPits(board)
	if len(legal) == 0 {
		return 0, metrics.SearchMetric{}, ErrNoLegalMoves
	}

	for {
		fmt.Fprintf(a.out, "%s\nplayer %d, choose a pit %v: ", board, session.ActivePlayer(), legal)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return 0, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
			}
			return 0, metrics.SearchMetric{}, io.ErrUnexpectedEOF
		}

		text := strings.TrimSpace(a.in.Text())
		if text == "hint" && a.hinter != nil {
			if !searcher.Solvable(board) {
				fmt.Fprintf(a.out, "position too large to solve (%d stones in play)\n", board.StonesInPits())
				continue
			}
			pit, guaranteed := a.hinter.Solve(board, session)
			if a.hinter.Exceeded() {
				fmt.Fprintf(a.out, "search gave up, best guess is pit %d\n", pit)
				continue
			}
			fmt.Fprintf(a.out, "solver suggests pit %d (guaranteed win: %t)\n", pit, guaranteed)
			continue
		}

		pit, err := strconv.Atoi(text)
		if err != nil || utils.FindIndex(legal, pit) < 0 {
			fmt.Fprintf(a.out, "%q is not a legal pit\n", text)
			continue
		}
		return pit, metrics.SearchMetric{Pit: pit}, nil
	}
}
