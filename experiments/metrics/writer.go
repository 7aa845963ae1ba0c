package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID   int
	Kind string // "solver" or "random"
	Seed uint64 // Only used by random agents
}

type GameRecord struct {
	ID     int
	Agent0 int // AgentConfig.ID
	Agent1 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
	create  func(path string) (io.WriteCloser, error)
}

// NewWriter creates a timestamped folder for the named experiment under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		create:  func(path string) (io.WriteCloser, error) { return os.Create(path) },
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
		})
	}

	err := w.write("agent_configs.csv", []string{"id", "kind", "seed"}, rows)
	if err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent0),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			strconv.Itoa(record.Bank0),
			strconv.Itoa(record.Bank1),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}

	header := []string{"id", "agent0", "agent1", "starting_player", "winner", "bank0", "bank1", "total_moves", "start_time", "end_time", "duration"}
	err := w.write("game_records.csv", header, rows)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Pit),
			strconv.FormatBool(record.Guaranteed),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Terminals),
			strconv.Itoa(record.Branches),
			record.Duration.String(),
		})
	}

	header := []string{"game", "step", "player", "pit", "guaranteed", "nodes", "terminals", "branches", "duration"}
	err := w.write("move_records.csv", header, rows)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

func (w *Writer) write(filename string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, filename)
	f, err := w.create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", filename, cerr)
		}
	}()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}
