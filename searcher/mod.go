package searcher

import "mancala/game"

// Searcher recommends a pit for the active player of a session.
type Searcher interface {
	Solve(board *game.Board, session *game.Session) (pit int, guaranteed bool)
}
