package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("valid starting players", func(t *testing.T) {
		for _, player := range []int{Player0, Player1} {
			session, err := NewSession(player)
			require.NoError(t, err)
			require.Equal(t, player, session.ActivePlayer())
		}
	})

	t.Run("invalid starting player", func(t *testing.T) {
		for _, player := range []int{-1, 2, 7} {
			session, err := NewSession(player)
			require.ErrorIs(t, err, ErrInvalidPlayer)
			require.Nil(t, session)
		}
	})
}

func TestSessionPlayTurn(t *testing.T) {
	t.Run("extra turn keeps the active player", func(t *testing.T) {
		board := NewUniformBoard(6, 4)
		session, _ := NewSession(Player0)

		require.True(t, session.PlayTurn(2, board))
		require.Equal(t, Player0, session.ActivePlayer(), "Player should move again")
		require.Equal(t, 1, board.Side(Player0).StonesInBank())
	})

	t.Run("passing turn flips the active player", func(t *testing.T) {
		board := NewUniformBoard(6, 4)
		session, _ := NewSession(Player0)

		require.True(t, session.PlayTurn(0, board))
		require.Equal(t, Player1, session.ActivePlayer())

		require.True(t, session.PlayTurn(0, board))
		require.Equal(t, Player0, session.ActivePlayer())
	})

	t.Run("invalid move leaves the session and board unchanged", func(t *testing.T) {
		board := NewUniformBoard(6, 4)
		before := board.Clone()
		session, _ := NewSession(Player1)

		require.False(t, session.PlayTurn(6, board))
		require.Equal(t, Player1, session.ActivePlayer())
		require.True(t, before.Equal(board), "Board should not change")
	})

	t.Run("cloned sessions are independent", func(t *testing.T) {
		board := NewUniformBoard(6, 4)
		session, _ := NewSession(Player0)
		clone := session.Clone()

		require.True(t, clone.PlayTurn(0, board.Clone()))
		require.Equal(t, Player1, clone.ActivePlayer())
		require.Equal(t, Player0, session.ActivePlayer(), "Original session should not change")
	})
}

func TestSessionLegalPits(t *testing.T) {
	board := mustBoard(t, []int{0, 2, 0, 1}, 0, []int{3, 0, 0, 0}, 0)

	session, _ := NewSession(Player0)
	require.Equal(t, []int{1, 3}, session.LegalPits(board))

	session, _ = NewSession(Player1)
	require.Equal(t, []int{0}, session.LegalPits(board))
}

func TestSessionResolveWinner(t *testing.T) {
	t.Run("unfinished game has no winner", func(t *testing.T) {
		board := NewUniformBoard(6, 4)
		before := board.Clone()
		session, _ := NewSession(Player0)

		require.False(t, session.IsFinished(board))
		_, ok := session.ResolveWinner(board)
		require.False(t, ok)
		require.True(t, before.Equal(board), "Board should not change")
	})

	t.Run("remaining stones are swept to their owner", func(t *testing.T) {
		board := mustBoard(t, []int{0, 0, 0}, 5, []int{1, 2, 0}, 3)
		session, _ := NewSession(Player0)

		require.True(t, session.IsFinished(board))
		outcome, ok := session.ResolveWinner(board)

		require.True(t, ok)
		require.Equal(t, Player1Wins, outcome)
		require.Equal(t, []int{0, 0, 0}, board.Side(Player1).Pits, "Pits should be swept")
		require.Equal(t, 6, board.Side(Player1).StonesInBank())
		require.Equal(t, 5, board.Side(Player0).StonesInBank())
	})

	t.Run("higher bank wins", func(t *testing.T) {
		board := mustBoard(t, []int{0, 1}, 9, []int{0, 0}, 4)
		session, _ := NewSession(Player1)

		outcome, ok := session.ResolveWinner(board)

		require.True(t, ok)
		require.Equal(t, Player0Wins, outcome)
		require.True(t, outcome.WonBy(Player0))
		require.False(t, outcome.WonBy(Player1))
	})

	t.Run("equal banks tie", func(t *testing.T) {
		board := mustBoard(t, []int{0, 0}, 4, []int{2, 0}, 2)
		session, _ := NewSession(Player0)

		outcome, ok := session.ResolveWinner(board)

		require.True(t, ok)
		require.Equal(t, Tie, outcome)
		_, hasWinner := outcome.Winner()
		require.False(t, hasWinner, "Tie should have no winner")
	})

	t.Run("resolving twice returns the same outcome", func(t *testing.T) {
		board := mustBoard(t, []int{0, 0, 0}, 5, []int{1, 2, 0}, 3)
		session, _ := NewSession(Player0)

		first, _ := session.ResolveWinner(board)
		swept := board.Clone()
		second, ok := session.ResolveWinner(board)

		require.True(t, ok)
		require.Equal(t, first, second)
		require.True(t, swept.Equal(board), "Second call should not change the board")
	})
}
