package game

import "errors"

// Board layout (pit indices for each player are inside the `( )` markings)
//
// Player 1: [ ] (5) (4) (3) (2) (1) (0)
// Player 0:     (0) (1) (2) (3) (4) (5) [ ]
//
// Stones are sown counterclockwise: a player's own pits from low to high
// index, their bank, then the opponent's pits from low to high index. The
// opponent's bank is always skipped.

const NumPlayers = 2

const (
	Player0 = 0
	Player1 = 1
)

var (
	ErrPitCountMismatch = errors.New("number of pits must be the same for both players")
	ErrInvalidPlayer    = errors.New("player index must be 0 or 1")
	ErrPitOutOfRange    = errors.New("pit index out of range")
	ErrNegativeStones   = errors.New("stone counts must not be negative")
)

// Opponent returns the index of the other player.
func Opponent(player int) int {
	return (player + 1) % NumPlayers
}

func validPlayer(player int) bool {
	return player == Player0 || player == Player1
}
