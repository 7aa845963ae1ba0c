package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"mancala/game"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	experiment      TEXT    NOT NULL,
	id              INTEGER NOT NULL,
	agent0          INTEGER NOT NULL,
	agent1          INTEGER NOT NULL,
	starting_player INTEGER NOT NULL,
	winner          TEXT    NOT NULL,
	bank0           INTEGER NOT NULL,
	bank1           INTEGER NOT NULL,
	total_moves     INTEGER NOT NULL,
	start_time      TEXT    NOT NULL,
	duration_ms     INTEGER NOT NULL,
	PRIMARY KEY (experiment, id)
);
CREATE TABLE IF NOT EXISTS moves (
	experiment TEXT    NOT NULL,
	game       INTEGER NOT NULL,
	step       INTEGER NOT NULL,
	player     INTEGER NOT NULL,
	pit        INTEGER NOT NULL,
	guaranteed INTEGER NOT NULL,
	nodes      INTEGER NOT NULL,
	terminals  INTEGER NOT NULL,
	branches   INTEGER NOT NULL,
	duration_us INTEGER NOT NULL,
	PRIMARY KEY (experiment, game, step),
	FOREIGN KEY (experiment, game) REFERENCES games (experiment, id)
);`

// Store keeps game and move records of several experiments in one SQLite file.
type Store struct {
	db *sql.DB
}

// OpenStore opens, and creates if missing, the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResults inserts the records of one experiment in a single transaction.
// Saving the same experiment name twice fails on the primary key.
func (s *Store) SaveResults(ctx context.Context, experiment string, games []GameRecord, moves []MoveRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, g := range games {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO games
				(experiment, id, agent0, agent1, starting_player, winner, bank0, bank1, total_moves, start_time, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			experiment, g.ID, g.Agent0, g.Agent1, g.StartingPlayer, g.Winner, g.Bank0, g.Bank1, g.TotalMoves,
			g.StartTime.UTC().Format(time.RFC3339), g.Duration.Milliseconds(),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert game %d: %w", g.ID, err)
		}
	}

	for _, m := range moves {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO moves
				(experiment, game, step, player, pit, guaranteed, nodes, terminals, branches, duration_us)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			experiment, m.Game, m.Step, m.Player, m.Pit, m.Guaranteed, m.Nodes, m.Terminals, m.Branches, m.Duration.Microseconds(),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert move %d of game %d: %w", m.Step, m.Game, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", experiment, err)
	}
	return nil
}

// WinsByAgent counts the games each agent won in the experiment. Ties are not counted.
func (s *Store) WinsByAgent(ctx context.Context, experiment string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT CASE winner WHEN ? THEN agent0 ELSE agent1 END AS agent, COUNT(1)
		FROM games
		WHERE experiment = ? AND winner IN (?, ?)
		GROUP BY agent`,
		game.Player0Wins.String(), experiment, game.Player0Wins.String(), game.Player1Wins.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := map[int]int{}
	for rows.Next() {
		var agent, count int
		if err := rows.Scan(&agent, &count); err != nil {
			return nil, err
		}
		wins[agent] = count
	}
	return wins, rows.Err()
}

// MoveCount returns the number of moves recorded for the experiment.
func (s *Store) MoveCount(ctx context.Context, experiment string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM moves WHERE experiment = ?`, experiment).Scan(&count)
	return count, err
}
