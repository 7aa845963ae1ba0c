package main

import (
	"flag"
	"fmt"
	"mancala/communication/client"
	"mancala/communication/server"
	"mancala/engine"
	"mancala/experiments"
	"mancala/game"
	"mancala/meta"
	"mancala/searcher"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	mode := flag.String("mode", "play", "One of play, experiment or serve")
	pits := flag.Int("pits", meta.DEFAULT_PITS, "Number of pits per player")
	stones := flag.Int("stones", meta.DEFAULT_STONES, "Number of stones per pit at the start")
	first := flag.Int("first", game.Player0, "Index of the player moving first, the human is player 0")
	opponent := flag.String("opponent", "random", "Opponent of the human: solver, random or remote")
	serverURL := flag.String("server", getEnv("SOLVER_URL", "http://localhost:8080"), "Solver server used by the remote opponent")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the random opponent")
	games := flag.Int("games", 10, "Games per match up in experiment mode")
	output := flag.String("output", getEnv("EXPERIMENTS_DIR", "experiments"), "Root folder for experiment CSVs")
	database := flag.String("db", getEnv("EXPERIMENTS_DB", ""), "SQLite file collecting experiment runs")
	flag.Parse()

	switch *mode {
	case "play":
		if err := play(*pits, *stones, *first, *opponent, *serverURL, *seed); err != nil {
			log.Fatal().Err(err).Msg("game aborted")
		}
	case "experiment":
		if *stones < 1 || !searcher.Solvable(game.NewUniformBoard(*pits, *stones)) {
			log.Fatal().Msgf("a %dx%d board cannot be solved, lower -pits or -stones", *pits, *stones)
		}
		result, err := experiments.RunSolverVsRandom(experiments.Config{
			Name:         "solver_vs_random",
			OutputDir:    *output,
			Database:     *database,
			NumGames:     *games,
			NumPits:      *pits,
			StonesPerPit: *stones,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		log.Info().Msgf("solver won %d, random won %d, %d ties", result.Wins[1], result.Wins[2], result.Ties)
	case "serve":
		nodeLimit, err := strconv.Atoi(getEnv("SOLVER_NODE_LIMIT", strconv.Itoa(meta.SOLVER_NODE_LIMIT)))
		if err != nil {
			log.Fatal().Err(err).Msg("invalid SOLVER_NODE_LIMIT")
		}
		port := getEnv("PORT", "8080")
		log.Info().Str("port", port).Int("node_limit", nodeLimit).Msg("starting solver server")
		if err := server.New(nodeLimit).Start(":" + port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func play(pits, stones, first int, opponent, serverURL string, seed uint64) error {
	if pits < 1 || stones < 1 {
		return fmt.Errorf("a board needs at least one pit and one stone per pit, got %dx%d", pits, stones)
	}
	board := game.NewUniformBoard(pits, stones)
	session, err := game.NewSession(first)
	if err != nil {
		return err
	}

	var agent engine.Agent
	switch opponent {
	case "solver":
		if !searcher.Solvable(board) {
			return fmt.Errorf("%d stones on %d pits is too large for the solver", board.StonesInPits(), board.NumPits())
		}
		agent = engine.NewSolverAgent(searcher.NewSolver(searcher.WithMetrics()))
	case "random":
		agent = engine.NewRandomAgent(seed)
	case "remote":
		agent = engine.NewRemoteAgent(client.NewClient(serverURL, time.Minute))
	default:
		return fmt.Errorf("unknown opponent %q", opponent)
	}

	human := engine.NewConsoleAgent(os.Stdin, os.Stdout, searcher.NewSolver())
	fmt.Printf("starting board\n%s\n", board)

	e := engine.LocalEngine(board, session, [game.NumPlayers]engine.Agent{human, agent}, engine.WithBoardOutput(os.Stdout))
	gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	outcome, finished := e.Outcome()
	if !finished {
		fmt.Printf("no winner after %d moves\n", gameMetric.TotalMoves)
		return nil
	}
	fmt.Printf("%s (%d to %d)\n", outcome, gameMetric.Bank0, gameMetric.Bank1)
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
