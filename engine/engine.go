package engine

import (
	"mancala/experiments/metrics"
	"mancala/game"
)

type Agent interface {
	// FindMove returns the pit to sow for the session's active player and any search metrics collected
	FindMove(board *game.Board, session *game.Session) (int, metrics.SearchMetric, error)
}
