package game

import "fmt"

// Outcome of a finished game.
type Outcome int

const (
	Player0Wins Outcome = iota
	Player1Wins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case Player0Wins:
		return "player 0 wins"
	case Player1Wins:
		return "player 1 wins"
	case Tie:
		return "tie"
	}
	return "unknown"
}

// Winner returns the winning player index, or false on a tie.
func (o Outcome) Winner() (int, bool) {
	switch o {
	case Player0Wins:
		return Player0, true
	case Player1Wins:
		return Player1, true
	}
	return -1, false
}

// WonBy reports whether the given player won.
func (o Outcome) WonBy(player int) bool {
	winner, ok := o.Winner()
	return ok && winner == player
}

// Session tracks whose turn it is. It holds no board; the board is passed to every call
// so that a search can clone the two independently.
type Session struct {
	activePlayer int
}

// NewSession creates a session with the given player to move first.
func NewSession(startingPlayer int) (*Session, error) {
	if !validPlayer(startingPlayer) {
		return nil, fmt.Errorf("invalid starting player %d: %w", startingPlayer, ErrInvalidPlayer)
	}
	return &Session{activePlayer: startingPlayer}, nil
}

func (s *Session) ActivePlayer() int {
	return s.activePlayer
}

func (s *Session) Clone() *Session {
	return &Session{activePlayer: s.activePlayer}
}

// PlayTurn plays the given pit for the active player. It returns false and leaves the
// active player unchanged if the move is invalid.
func (s *Session) PlayTurn(pit int, board *Board) bool {
	return s.Play(pit, board).Valid()
}

// Play is PlayTurn reporting the full turn outcome.
func (s *Session) Play(pit int, board *Board) TurnOutcome {
	outcome := ApplyTurn(s.activePlayer, pit, board)
	if outcome == ValidTurnPasses {
		s.activePlayer = Opponent(s.activePlayer)
	}
	return outcome
}

// LegalPits lists, in ascending order, the pits the active player may sow.
func (s *Session) LegalPits(board *Board) []int {
	side := board.Side(s.activePlayer)
	pits := make([]int, 0, side.NumPits())
	for i := 0; i < side.NumPits(); i++ {
		if side.StonesInPit(i) > 0 {
			pits = append(pits, i)
		}
	}
	return pits
}

// IsFinished reports whether all pits on either side are empty.
func (s *Session) IsFinished(board *Board) bool {
	return board.Side(Player0).SumOfPits() == 0 || board.Side(Player1).SumOfPits() == 0
}

// ResolveWinner returns false if the game is not finished. Otherwise it sweeps every
// remaining stone into its owner's bank and compares the banks. Calling it again on the
// swept board returns the same outcome.
func (s *Session) ResolveWinner(board *Board) (Outcome, bool) {
	if !s.IsFinished(board) {
		return 0, false
	}

	for player := range NumPlayers {
		side := board.Side(player)
		side.AddStonesToBank(side.SumOfPits())
		for i := 0; i < side.NumPits(); i++ {
			side.ClearPit(i)
		}
	}

	bank0 := board.Side(Player0).StonesInBank()
	bank1 := board.Side(Player1).StonesInBank()
	switch {
	case bank0 > bank1:
		return Player0Wins, true
	case bank1 > bank0:
		return Player1Wins, true
	default:
		return Tie, true
	}
}
