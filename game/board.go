package game

import (
	"fmt"
	"mancala/utils"
	"slices"
	"strings"
)

// Side is one player's half of the board: a row of pits plus a bank.
// Stones sown on a side travel from pit 0 towards the bank.
type Side struct {
	Pits []int `json:"pits"`
	Bank int   `json:"bank"`
}

// NewSide creates a side from an explicit pit row and bank count. The pit slice is copied.
func NewSide(pits []int, bank int) Side {
	return Side{Pits: slices.Clone(pits), Bank: bank}
}

func uniformSide(numPits, stonesPerPit int) Side {
	pits := make([]int, numPits)
	for i := range pits {
		pits[i] = stonesPerPit
	}
	return Side{Pits: pits}
}

func (s *Side) NumPits() int {
	return len(s.Pits)
}

func (s *Side) AddStoneToPit(pit int) error {
	if pit < 0 || pit >= len(s.Pits) {
		return fmt.Errorf("cannot add stone to pit %d of %d: %w", pit, len(s.Pits), ErrPitOutOfRange)
	}
	s.Pits[pit]++
	return nil
}

func (s *Side) ClearPit(pit int) {
	s.Pits[pit] = 0
}

func (s *Side) StonesInPit(pit int) int {
	return s.Pits[pit]
}

func (s *Side) SumOfPits() int {
	return utils.Sum(s.Pits)
}

func (s *Side) AddStonesToBank(stones int) {
	s.Bank += stones
}

func (s *Side) StonesInBank() int {
	return s.Bank
}

func (s Side) clone() Side {
	return Side{Pits: slices.Clone(s.Pits), Bank: s.Bank}
}

// Board holds both players' sides. Both sides always have the same number of pits.
type Board struct {
	sides [NumPlayers]Side
}

// NewUniformBoard creates a board where every pit holds stonesPerPit stones and both banks are empty.
func NewUniformBoard(numPits, stonesPerPit int) *Board {
	return &Board{sides: [NumPlayers]Side{
		uniformSide(numPits, stonesPerPit),
		uniformSide(numPits, stonesPerPit),
	}}
}

// NewBoardFromSides creates a board from explicit sides, failing if the pit rows differ in
// length or any pit or bank holds a negative count.
func NewBoardFromSides(side0, side1 Side) (*Board, error) {
	if side0.NumPits() != side1.NumPits() {
		return nil, fmt.Errorf("player 0 has %d pits, player 1 has %d: %w", side0.NumPits(), side1.NumPits(), ErrPitCountMismatch)
	}
	for player, side := range []Side{side0, side1} {
		if side.Bank < 0 {
			return nil, fmt.Errorf("player %d bank holds %d: %w", player, side.Bank, ErrNegativeStones)
		}
		for pit, stones := range side.Pits {
			if stones < 0 {
				return nil, fmt.Errorf("player %d pit %d holds %d: %w", player, pit, stones, ErrNegativeStones)
			}
		}
	}
	return &Board{sides: [NumPlayers]Side{side0.clone(), side1.clone()}}, nil
}

// NumPits is enforced on construction to be the same for both players.
func (b *Board) NumPits() int {
	return b.sides[Player0].NumPits()
}

// Side returns the mutable side of the given player. It panics on an invalid player index.
func (b *Board) Side(player int) *Side {
	return &b.sides[player]
}

// Sides returns copies of both sides.
func (b *Board) Sides() (Side, Side) {
	return b.sides[Player0].clone(), b.sides[Player1].clone()
}

// OpposingPit returns the index of the pit facing the given pit on the other side.
func (b *Board) OpposingPit(pit int) int {
	return b.NumPits() - pit - 1
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{sides: [NumPlayers]Side{b.sides[Player0].clone(), b.sides[Player1].clone()}}
}

// TotalStones counts every stone on the board, banks included. Legal moves never change it.
func (b *Board) TotalStones() int {
	total := 0
	for i := range b.sides {
		total += b.sides[i].SumOfPits() + b.sides[i].Bank
	}
	return total
}

// StonesInPits counts the stones still in play, banks excluded.
func (b *Board) StonesInPits() int {
	return b.sides[Player0].SumOfPits() + b.sides[Player1].SumOfPits()
}

func (b *Board) Equal(other *Board) bool {
	for i := range b.sides {
		if b.sides[i].Bank != other.sides[i].Bank || !slices.Equal(b.sides[i].Pits, other.sides[i].Pits) {
			return false
		}
	}
	return true
}

// String draws player 1's row reversed above player 0's row, as seen from player 0's seat.
func (b *Board) String() string {
	var sb strings.Builder

	top := b.sides[Player1]
	fmt.Fprintf(&sb, "[%d]", top.Bank)
	for i := len(top.Pits) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, " (%d)", top.Pits[i])
	}
	sb.WriteString("\n    ")

	bottom := b.sides[Player0]
	for _, stones := range bottom.Pits {
		fmt.Fprintf(&sb, "(%d) ", stones)
	}
	fmt.Fprintf(&sb, "[%d]\n", bottom.Bank)

	return sb.String()
}
