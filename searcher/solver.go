package searcher

import (
	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *Solver)

// Solver exhaustively explores every line of play from a position. It does not
// prune with alpha-beta or cache positions, so it is only practical on small boards.
type Solver struct {
	metrics   metrics.Collector
	logger    zerolog.Logger
	nodeLimit int // 0 means unlimited
	nodes     int
	exceeded  bool
	stats     *BranchStats
	last      metrics.SearchMetric
}

func WithMetrics() Option {
	return func(s *Solver) {
		s.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithNodeLimit stops a search after expanding the given number of positions.
// A limit of 0 searches until the tree is exhausted.
func WithNodeLimit(limit int) Option {
	return func(s *Solver) {
		if limit >= 0 {
			s.nodeLimit = limit
		}
	}
}

func NewSolver(options ...Option) *Solver {
	s := &Solver{ // Default values
		metrics:   metrics.NewDummyCollector(),
		logger:    log.Logger,
		nodeLimit: meta.SOLVER_NODE_LIMIT,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Solve returns the pit to play for the active player. If the move guarantees a win
// even with perfect play by the opponent, guaranteed is true. Otherwise the pit with
// the highest share of winning branches is returned. If the node limit is hit the
// search stops early, Exceeded reports true and the pit is picked from the partial
// statistics.
func (s *Solver) Solve(board *game.Board, session *game.Session) (int, bool) {
	s.stats = newBranchStats(board.NumPits())
	s.nodes = 0
	s.exceeded = false
	s.metrics.Start()

	pit, guaranteed := s.solve(board, session)

	s.last = s.metrics.Complete(pit, guaranteed, s.stats.Branches())
	s.logger.Debug().
		Int("pit", pit).
		Bool("guaranteed", guaranteed).
		Int("branches", s.stats.Branches()).
		Bool("exceeded", s.exceeded).
		Msg("solved position")
	return pit, guaranteed
}

// Exceeded reports whether the most recent Solve stopped at the node limit.
func (s *Solver) Exceeded() bool {
	return s.exceeded
}

// LastStats returns a copy of the branch statistics of the most recent Solve.
func (s *Solver) LastStats() BranchStats {
	if s.stats == nil {
		return BranchStats{}
	}
	return s.stats.clone()
}

// Metrics returns the search metrics of the most recent Solve.
func (s *Solver) Metrics() metrics.SearchMetric {
	return s.last
}

func (s *Solver) solve(board *game.Board, session *game.Session) (int, bool) {
	mover := session.ActivePlayer()

	for pit := 0; pit < board.NumPits(); pit++ {
		childBoard := board.Clone()
		childSession := session.Clone()
		if !childSession.PlayTurn(pit, childBoard) {
			continue
		}

		// Immediate losses and ties record no statistics
		if outcome, finished := childSession.ResolveWinner(childBoard); finished {
			s.metrics.AddTerminal()
			if outcome.WonBy(mover) {
				return pit, true
			}
			continue
		}

		if s.explore(childBoard, childSession, mover, pit) {
			s.logger.Info().Msgf("found guaranteed win with pit %d after %d branches", pit, s.stats.Branches())
			return pit, true
		}
		if s.exceeded {
			s.logger.Warn().Msgf("search stopped after %d nodes", s.nodeLimit)
			break
		}
	}

	return s.stats.Best(), false
}

// explore returns true if rootMover can force a win from this position. When rootMover
// is to move, one forcing reply is enough. When the opponent is to move, every reply
// must still lead to a forced win.
func (s *Solver) explore(board *game.Board, session *game.Session, rootMover, rootPit int) bool {
	s.metrics.AddNode()
	s.nodes++
	if s.nodeLimit > 0 && s.nodes > s.nodeLimit {
		s.exceeded = true
		return false
	}
	mover := session.ActivePlayer()

	for pit := 0; pit < board.NumPits(); pit++ {
		childBoard := board.Clone()
		childSession := session.Clone()
		if !childSession.PlayTurn(pit, childBoard) {
			continue
		}

		if outcome, finished := childSession.ResolveWinner(childBoard); finished {
			s.metrics.AddTerminal()
			switch {
			case outcome.WonBy(rootMover):
				s.stats.Winning[rootPit]++
				s.stats.Total[rootPit]++
				if mover == rootMover {
					return true
				}
			case outcome == game.Tie:
				s.stats.Drawn[rootPit]++
			default:
				// The opponent can choose a win
				if mover != rootMover {
					return false
				}
			}
			// A win reached by the opponent's move is counted twice in the total
			s.stats.Total[rootPit]++
			continue
		}

		forced := s.explore(childBoard, childSession, rootMover, rootPit)
		if s.exceeded {
			return false
		}
		if forced && mover == rootMover {
			return true
		}
		// The opponent has a reply that avoids a forced win. Returning here skips the
		// remaining siblings, so their lines are missing from the statistics.
		if !forced && mover != rootMover {
			return false
		}
	}

	// Every opponent reply led to a forced win, or rootMover had no forcing reply
	return mover != rootMover
}

// Solvable reports whether the position is small enough to attempt a solve. The limits
// come from node counts measured on uniform starting boards.
func Solvable(board *game.Board) bool {
	maxStones, ok := meta.SOLVER_MAX_STONES[board.NumPits()]
	return ok && board.StonesInPits() <= maxStones
}
