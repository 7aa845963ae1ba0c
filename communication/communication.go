package communication

import (
	"fmt"
	"mancala/game"
	"mancala/searcher"
)

// Position is the wire form of a board plus the player to move.
type Position struct {
	Sides  [game.NumPlayers]game.Side `json:"sides"`
	Player int                        `json:"player"`
}

func NewPosition(board *game.Board, session *game.Session) Position {
	side0, side1 := board.Sides()
	return Position{
		Sides:  [game.NumPlayers]game.Side{side0, side1},
		Player: session.ActivePlayer(),
	}
}

// Decode validates the position and builds the board and session it describes.
func (p Position) Decode() (*game.Board, *game.Session, error) {
	board, err := game.NewBoardFromSides(p.Sides[game.Player0], p.Sides[game.Player1])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid board: %w", err)
	}
	session, err := game.NewSession(p.Player)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid session: %w", err)
	}
	return board, session, nil
}

type SolveResponse struct {
	Pit        int                  `json:"pit"`
	Guaranteed bool                 `json:"guaranteed"`
	Stats      searcher.BranchStats `json:"stats"`
	Nodes      int                  `json:"nodes"`
	DurationMs int64                `json:"durationMs"`
}

type TurnRequest struct {
	Position
	Pit int `json:"pit"`
}

type TurnResponse struct {
	Outcome  string   `json:"outcome"`
	Valid    bool     `json:"valid"`
	Position Position `json:"position"`
	Finished bool     `json:"finished"`
	Winner   string   `json:"winner,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
