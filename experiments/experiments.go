package experiments

import (
	"context"
	"fmt"
	"mancala/engine"
	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	KindSolver = "solver"
	KindRandom = "random"
)

type Config struct {
	Name         string
	OutputDir    string // Root folder for CSV output, nothing is written if empty
	Database     string // SQLite file collecting the records of every run, unused if empty
	NumGames     int    // Per match up
	NumPits      int
	StonesPerPit int
}

type Result struct {
	RunID string // Key of the run in the database
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  map[int]int // Games won per AgentConfig.ID
	Ties  int
}

// RunSolverVsRandom pairs the solver against a random agent, alternating seats every game.
func RunSolverVsRandom(cfg Config) (*Result, error) {
	solver := metrics.AgentConfig{ID: 1, Kind: KindSolver}
	random := metrics.AgentConfig{ID: 2, Kind: KindRandom, Seed: 1}
	matchUps := [][]metrics.AgentConfig{
		{solver, random},
		{random, solver},
	}
	return runExperiment(cfg, []metrics.AgentConfig{solver, random}, matchUps)
}

func runExperiment(cfg Config, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (*Result, error) {
	count := 0
	result := &Result{
		RunID: cfg.Name + "@" + time.Now().UTC().Format("20060102T150405.000000000Z"),
		Wins:  map[int]int{},
	}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent0=%+v and agent1=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < cfg.NumGames; i++ {
			count++
			gameMetric, moveMetrics, err := runGame(cfg, matchUp, uint64(count))
			if err != nil {
				return nil, fmt.Errorf("game %d failed: %w", count, err)
			}

			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent0:     matchUp[0].ID,
				Agent1:     matchUp[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			switch gameMetric.Winner {
			case game.Player0Wins.String():
				result.Wins[matchUp[0].ID]++
			case game.Player1Wins.String():
				result.Wins[matchUp[1].ID]++
			case game.Tie.String():
				result.Ties++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.OutputDir != "" {
		if err := writeCSV(cfg, configs, result); err != nil {
			return nil, err
		}
	}
	if cfg.Database != "" {
		if err := saveToDatabase(cfg.Database, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func writeCSV(cfg Config, configs []metrics.AgentConfig, result *Result) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

func saveToDatabase(path string, result *Result) error {
	store, err := metrics.OpenStore(path)
	if err != nil {
		return fmt.Errorf("failed to open experiment store: %w", err)
	}
	defer store.Close()

	if err := store.SaveResults(context.Background(), result.RunID, result.Games, result.Moves); err != nil {
		return fmt.Errorf("failed to save %s: %w", result.RunID, err)
	}

	wins, err := store.WinsByAgent(context.Background(), result.RunID)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", result.RunID, err)
	}
	moves, err := store.MoveCount(context.Background(), result.RunID)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", result.RunID, err)
	}
	log.Info().Msgf("stored run %s in %s with %d moves and wins %v", result.RunID, path, moves, wins)
	return nil
}

// runGame plays a single game on a fresh board with player 0 starting
func runGame(cfg Config, matchUp []metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	var agents [game.NumPlayers]engine.Agent
	for i, config := range matchUp {
		agent, err := createAgent(config, seed)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		agents[i] = agent
	}

	board := game.NewUniformBoard(cfg.NumPits, cfg.StonesPerPit)
	session, err := game.NewSession(game.Player0)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	return engine.LocalEngine(board, session, agents).Run()
}

func createAgent(config metrics.AgentConfig, seed uint64) (engine.Agent, error) {
	switch config.Kind {
	case KindSolver:
		return engine.NewSolverAgent(searcher.NewSolver(searcher.WithMetrics())), nil
	case KindRandom:
		return engine.NewRandomAgent(config.Seed + seed), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}
