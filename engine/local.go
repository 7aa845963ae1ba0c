package engine

import (
	"fmt"
	"io"
	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/meta"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

type Engine struct {
	Board    *game.Board
	Session  *game.Session
	Agents   [game.NumPlayers]Agent
	maxTurns int
	output   io.Writer
}

// WithMaxTurns stops the game after the given number of moves.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithBoardOutput prints the board after every move and once the game is over.
func WithBoardOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.output = w
	}
}

func LocalEngine(board *game.Board, session *game.Session, agents [game.NumPlayers]Agent, options ...Option) *Engine {
	for i, agent := range agents {
		if agent == nil {
			panic(fmt.Sprintf("no agent for player %d", i))
		}
	}

	e := &Engine{
		Board:    board,
		Session:  session,
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until the game is finished or the turn limit is reached.
func (e *Engine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Session.ActivePlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", e.Session.ActivePlayer())

	step := 1
	for !e.Session.IsFinished(e.Board) && step <= e.maxTurns {
		player := e.Session.ActivePlayer()

		pit, searchMetric, err := e.Agents[player].FindMove(e.Board, e.Session)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %d failed to find a move: %w", player, err)
		}

		if !e.Session.PlayTurn(pit, e.Board) {
			// Agents may suggest an empty pit when no line looks favourable
			legal := e.Session.LegalPits(e.Board)
			log.Warn().Msgf("player %d chose invalid pit %d, falling back to pit %d", player, pit, legal[0])
			pit = legal[0]
			e.Session.PlayTurn(pit, e.Board)
		}
		log.Debug().Int("step", step).Int("player", player).Int("pit", pit).Msg("played move")

		searchMetric.Pit = pit
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			SearchMetric: searchMetric,
		})

		if e.output != nil {
			fmt.Fprintf(e.output, "player %d played pit %d\n%s\n", player, pit, e.Board)
		}
		step++
	}

	gameMetric.TotalMoves = step - 1
	if outcome, finished := e.Session.ResolveWinner(e.Board); finished {
		gameMetric.Winner = outcome.String()
		log.Info().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, outcome)
	} else {
		log.Warn().Msgf("stopped after %d moves with no winner", gameMetric.TotalMoves)
	}

	gameMetric.Bank0 = e.Board.Side(game.Player0).StonesInBank()
	gameMetric.Bank1 = e.Board.Side(game.Player1).StonesInBank()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	if e.output != nil {
		fmt.Fprintf(e.output, "final board\n%s\n", e.Board)
	}

	return gameMetric, moveMetrics, nil
}

// Outcome reports the result once the game is finished.
func (e *Engine) Outcome() (game.Outcome, bool) {
	return e.Session.ResolveWinner(e.Board)
}
