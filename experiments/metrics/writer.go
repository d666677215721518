package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentRecord struct {
	ID         int
	Question   string
	Kind       string
	Depth      int
	Evaluation string
	Goroutines int
	Timeout    time.Duration
}

type GameRecord struct {
	ID       int
	Question string
	Agent    int // AgentRecord.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type GradeRecord struct {
	Question     string   `json:"question"`
	Points       int      `json:"points"`
	MaxPoints    int      `json:"maxPoints"`
	Games        int      `json:"games"`
	Wins         int      `json:"wins"`
	AverageScore float64  `json:"averageScore"`
	Messages     []string `json:"messages,omitempty"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<runID> for one experiment run.
func NewWriter(root, name, runID string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentRecord) error {
	header := []string{"id", "question", "kind", "depth", "evaluation", "goroutines", "timeout"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Question,
			config.Kind,
			strconv.Itoa(config.Depth),
			config.Evaluation,
			strconv.Itoa(config.Goroutines),
			config.Timeout.String(),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "question", "agent", "layout", "win", "score", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Question,
			strconv.Itoa(record.Agent),
			record.Layout,
			strconv.FormatBool(record.Win),
			strconv.FormatFloat(record.Score, 'f', -1, 64),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "agent", "action", "algorithm", "depth", "duration", "nodes", "evaluations"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Agent),
			record.Action,
			record.Algorithm,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteGrades(grades []GradeRecord) error {
	path := filepath.Join(w.baseDir, "grades.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create grades file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(grades); err != nil {
		return fmt.Errorf("failed to write grades: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
