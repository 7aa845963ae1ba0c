package searcher

import (
	"mancala/game"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestSolver(options ...Option) *Solver {
	return NewSolver(append([]Option{WithLogger(zerolog.Nop())}, options...)...)
}

func setup(t *testing.T, pits0 []int, bank0 int, pits1 []int, bank1 int, player int) (*game.Board, *game.Session) {
	t.Helper()
	board, err := game.NewBoardFromSides(game.NewSide(pits0, bank0), game.NewSide(pits1, bank1))
	require.NoError(t, err)
	session, err := game.NewSession(player)
	require.NoError(t, err)
	return board, session
}

func TestSolveImmediateWin(t *testing.T) {
	t.Run("capture that empties the board wins on the spot", func(t *testing.T) {
		board, session := setup(t, []int{1, 0}, 0, []int{3, 0}, 0, game.Player0)

		pit, guaranteed := newTestSolver().Solve(board, session)

		require.Equal(t, 0, pit)
		require.True(t, guaranteed, "Winning on the spot should be guaranteed")
	})

	t.Run("player 1 as the mover", func(t *testing.T) {
		board, session := setup(t, []int{3, 0}, 0, []int{1, 0}, 0, game.Player1)

		pit, guaranteed := newTestSolver().Solve(board, session)

		require.Equal(t, 0, pit)
		require.True(t, guaranteed)
	})

	t.Run("lowest winning pit is chosen", func(t *testing.T) {
		// Pits 0 and 1 both capture the opponent's last stones
		board, session := setup(t, []int{2, 1, 0}, 0, []int{3, 0, 0}, 0, game.Player0)

		pit, guaranteed := newTestSolver().Solve(board, session)

		require.Equal(t, 0, pit)
		require.True(t, guaranteed)
	})

	t.Run("empty pits are skipped", func(t *testing.T) {
		board, session := setup(t, []int{0, 1, 0}, 0, []int{3, 0, 0}, 0, game.Player0)

		pit, guaranteed := newTestSolver().Solve(board, session)

		require.Equal(t, 1, pit)
		require.True(t, guaranteed)
	})

	t.Run("input position is not mutated", func(t *testing.T) {
		board, session := setup(t, []int{1, 1, 1}, 0, []int{1, 1, 1}, 0, game.Player1)
		before := board.Clone()

		newTestSolver().Solve(board, session)

		require.True(t, before.Equal(board), "Board should not change")
		require.Equal(t, game.Player1, session.ActivePlayer(), "Session should not change")
	})
}

func TestSolveForcedWin(t *testing.T) {
	t.Run("forced win found through the opponent's replies", func(t *testing.T) {
		board, session := setup(t, []int{1, 1}, 0, []int{1, 1}, 0, game.Player0)

		pit, guaranteed := newTestSolver().Solve(board, session)

		require.Equal(t, 1, pit)
		require.True(t, guaranteed)
	})

	t.Run("branch statistics are kept after a forced win", func(t *testing.T) {
		board, session := setup(t, []int{1, 1, 1}, 0, []int{1, 1, 1}, 0, game.Player1)
		solver := newTestSolver(WithMetrics())

		pit, guaranteed := solver.Solve(board, session)

		require.Equal(t, 2, pit)
		require.True(t, guaranteed)
		stats := solver.LastStats()
		require.Equal(t, []int{0, 1, 1}, stats.Winning)
		require.Equal(t, []int{1, 1, 2}, stats.Drawn)
		require.Equal(t, []int{2, 4, 4}, stats.Total)

		metric := solver.Metrics()
		require.Equal(t, 21, metric.Nodes, "Every explored position should be counted")
		require.Positive(t, metric.Terminals)
		require.Equal(t, 10, metric.Branches)
		require.Equal(t, 2, metric.Pit)
		require.True(t, metric.Guaranteed)
	})
}

func TestSolveFallback(t *testing.T) {
	t.Run("highest winning ratio is chosen", func(t *testing.T) {
		board, session := setup(t, []int{3, 3, 1}, 0, []int{1, 2, 1}, 0, game.Player0)
		solver := newTestSolver(WithMetrics())

		pit, guaranteed := solver.Solve(board, session)

		require.Equal(t, 2, pit, "12/21 beats 11/23")
		require.False(t, guaranteed)
		stats := solver.LastStats()
		require.Equal(t, []int{0, 11, 12}, stats.Winning)
		require.Equal(t, []int{0, 0, 0}, stats.Drawn)
		require.Equal(t, []int{2, 23, 21}, stats.Total)
		require.Equal(t, 113, solver.Metrics().Nodes)
	})

	t.Run("draws do not count towards the ratio", func(t *testing.T) {
		board, session := setup(t, []int{1, 2}, 0, []int{1, 2}, 0, game.Player0)
		solver := newTestSolver()

		pit, guaranteed := solver.Solve(board, session)

		require.Equal(t, 1, pit)
		require.False(t, guaranteed)
		stats := solver.LastStats()
		require.Equal(t, []int{0, 1}, stats.Winning)
		require.Equal(t, []int{0, 1}, stats.Drawn)
		require.Equal(t, []int{1, 3}, stats.Total)
	})

	t.Run("only drawn branches fall back to pit 0", func(t *testing.T) {
		board, session := setup(t, []int{2, 1}, 0, []int{1, 2}, 0, game.Player0)
		solver := newTestSolver()

		pit, guaranteed := solver.Solve(board, session)

		require.Equal(t, 0, pit)
		require.False(t, guaranteed)
		require.Equal(t, []int{0, 1}, solver.LastStats().Drawn)
	})

	t.Run("immediate losses record no statistics", func(t *testing.T) {
		// The only move reaches the bank and empties the row with a smaller bank
		board, session := setup(t, []int{0, 1}, 0, []int{5, 0}, 10, game.Player0)
		solver := newTestSolver()

		pit, guaranteed := solver.Solve(board, session)

		require.Equal(t, 0, pit, "Default pit should be returned when no ratio is positive")
		require.False(t, guaranteed)
		require.Equal(t, []int{0, 0}, solver.LastStats().Total)
	})

	t.Run("statistics are reset between solves", func(t *testing.T) {
		solver := newTestSolver()
		board, session := setup(t, []int{3, 3, 1}, 0, []int{1, 2, 1}, 0, game.Player0)
		solver.Solve(board, session)

		board, session = setup(t, []int{0, 1}, 0, []int{5, 0}, 10, game.Player0)
		solver.Solve(board, session)

		require.Equal(t, []int{0, 0}, solver.LastStats().Total)
	})
}

func TestExplore(t *testing.T) {
	t.Run("opponent move into a win for the root mover counts twice", func(t *testing.T) {
		board, session := setup(t, []int{1, 1}, 4, []int{0, 1}, 0, game.Player1)
		solver := newTestSolver()
		solver.stats = newBranchStats(board.NumPits())

		forced := solver.explore(board, session, game.Player0, 0)

		require.True(t, forced, "Every opponent reply loses")
		require.Equal(t, []int{1, 0}, solver.stats.Winning)
		require.Equal(t, []int{2, 0}, solver.stats.Total)
	})

	t.Run("opponent with a denying reply", func(t *testing.T) {
		board, session := setup(t, []int{1, 0}, 1, []int{1, 2}, 4, game.Player1)
		solver := newTestSolver()
		solver.stats = newBranchStats(board.NumPits())

		forced := solver.explore(board, session, game.Player0, 0)

		require.False(t, forced)
		require.Equal(t, []int{0, 0}, solver.stats.Total, "Pruned lines should not be counted")
	})
}

func TestBranchStats(t *testing.T) {
	t.Run("ratio without branches is NaN", func(t *testing.T) {
		stats := newBranchStats(2)

		require.True(t, math.IsNaN(stats.Ratio(0)))
	})

	t.Run("ties keep the lowest pit", func(t *testing.T) {
		stats := &BranchStats{
			Winning: []int{0, 1, 2},
			Drawn:   []int{0, 0, 0},
			Total:   []int{0, 2, 4},
		}

		require.Equal(t, 1, stats.Best())
		require.Equal(t, 6, stats.Branches())
	})

	t.Run("copies do not alias", func(t *testing.T) {
		stats := newBranchStats(2)
		copied := stats.clone()

		stats.Total[0]++

		require.Equal(t, []int{0, 0}, copied.Total)
	})
}

func TestSolveNodeLimit(t *testing.T) {
	t.Run("search stops at the limit", func(t *testing.T) {
		board := game.NewUniformBoard(3, 4)
		session, _ := game.NewSession(game.Player0)
		solver := newTestSolver(WithMetrics(), WithNodeLimit(1000))

		_, guaranteed := solver.Solve(board, session)

		require.True(t, solver.Exceeded())
		require.False(t, guaranteed, "A partial search cannot prove a win")
		require.Equal(t, 1001, solver.Metrics().Nodes)
	})

	t.Run("the same position finishes under the default limit", func(t *testing.T) {
		board := game.NewUniformBoard(3, 4)
		session, _ := game.NewSession(game.Player0)
		solver := newTestSolver(WithMetrics())

		pit, guaranteed := solver.Solve(board, session)

		require.False(t, solver.Exceeded())
		require.Equal(t, 0, pit)
		require.True(t, guaranteed)
		require.Equal(t, 68795, solver.Metrics().Nodes)
	})

	t.Run("every solve starts a fresh budget", func(t *testing.T) {
		solver := newTestSolver(WithNodeLimit(500))
		session, _ := game.NewSession(game.Player0)
		solver.Solve(game.NewUniformBoard(3, 4), session)
		require.True(t, solver.Exceeded())

		// 399 nodes
		pit, guaranteed := solver.Solve(game.NewUniformBoard(3, 3), session)

		require.False(t, solver.Exceeded())
		require.Equal(t, 0, pit)
		require.True(t, guaranteed)
	})

	t.Run("zero disables the limit", func(t *testing.T) {
		board := game.NewUniformBoard(4, 2)
		session, _ := game.NewSession(game.Player0)
		solver := newTestSolver(WithNodeLimit(0))

		solver.Solve(board, session)

		require.False(t, solver.Exceeded())
	})
}

func TestSolvable(t *testing.T) {
	tests := []struct {
		name     string
		board    *game.Board
		solvable bool
	}{
		{"small board", game.NewUniformBoard(3, 3), true},
		{"largest measured three pit board", game.NewUniformBoard(3, 4), true},
		{"six pits with one stone each", game.NewUniformBoard(6, 1), true},
		{"standard board", game.NewUniformBoard(6, 4), false},
		{"nine pits with one stone each", game.NewUniformBoard(9, 1), false},
		{"five pits with two stones each", game.NewUniformBoard(5, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.solvable, Solvable(tt.board))
		})
	}

	t.Run("banked stones do not count", func(t *testing.T) {
		board, _ := setup(t, []int{2, 2, 2, 0, 0, 0}, 20, []int{1, 1, 1, 1, 1, 1}, 18, game.Player0)

		require.True(t, Solvable(board))
	})
}
