package game

// TurnOutcome is the result of applying a single sowing action.
type TurnOutcome int

const (
	// Invalid means the action could not be applied and the board is unchanged.
	Invalid TurnOutcome = iota
	// ValidExtraTurn means the last stone landed in the mover's bank.
	ValidExtraTurn
	// ValidTurnPasses means the action was applied and play passes to the opponent.
	ValidTurnPasses
)

func (o TurnOutcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case ValidExtraTurn:
		return "extra turn"
	case ValidTurnPasses:
		return "turn passes"
	}
	return "unknown"
}

// Valid reports whether the turn was applied to the board.
func (o TurnOutcome) Valid() bool {
	return o == ValidExtraTurn || o == ValidTurnPasses
}

// ApplyTurn sows the stones of the given pit for the given player, mutating the board in place.
func ApplyTurn(player, pit int, board *Board) TurnOutcome {
	// There is only support for two players with indices 0 and 1
	if !validPlayer(player) {
		return Invalid
	}
	if pit < 0 || pit >= board.NumPits() {
		return Invalid
	}

	own := board.Side(player)
	opposing := board.Side(Opponent(player))

	stones := own.StonesInPit(pit)
	own.ClearPit(pit)
	if stones <= 0 {
		return Invalid
	}

	numPits := board.NumPits()
	next := pit + 1 // The first pass starts right after the source pit
	for {
		for ; next < numPits && stones > 0; next++ {
			own.Pits[next]++
			stones--
		}
		if stones == 0 {
			capture(board, player, next-1)
			return ValidTurnPasses
		}

		own.AddStonesToBank(1)
		stones--
		if stones == 0 {
			return ValidExtraTurn
		}

		// Opponent's bank is skipped
		for i := 0; i < numPits && stones > 0; i++ {
			opposing.Pits[i]++
			stones--
		}
		if stones == 0 {
			return ValidTurnPasses
		}

		next = 0
	}
}

// capture moves the last sown stone and the stones facing it into the mover's bank,
// provided the landing pit was empty before the stone arrived.
func capture(board *Board, player, finalPit int) {
	own := board.Side(player)
	opposing := board.Side(Opponent(player))
	opposingPit := board.OpposingPit(finalPit)

	captured := opposing.StonesInPit(opposingPit)
	if own.StonesInPit(finalPit) != 1 || captured <= 0 {
		return
	}

	own.AddStonesToBank(1 + captured)
	own.ClearPit(finalPit)
	opposing.ClearPit(opposingPit)
}
