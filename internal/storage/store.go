// Package storage keeps headless runs on disk so they can be listed,
// compared and replayed later.
//
// Each run gets its own directory:
//
//	<base>/<id>/metadata.json  run summary and metrics
//	<base>/<id>/config.yaml    effective configuration
//	<base>/<id>/trace.csv      input events, replayable with "trailfx replay"
//	<base>/<id>/frames.csv     per-frame particle and ripple counts
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/playback"
	"github.com/san-kum/trailfx/internal/trace"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Duration  float64            `json:"duration_s"`
	Events    int                `json:"events"`
	Spawned   uint64             `json:"spawned"`
	Clicks    uint64             `json:"clicks"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run and returns its id. source names where the input came
// from, such as a pattern name or a trace file.
func (s *Store) Save(source string, cfg *config.Config, events []trace.Event, result *playback.Result) (string, error) {
	now := time.Now()
	id := fx.NewID().String()
	runID := fmt.Sprintf("%s_%d_%s", sanitize(source), now.Unix(), id[len(id)-8:])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Source:    source,
		Timestamp: now,
		Seed:      cfg.Seed,
		Frames:    result.Frames,
		Duration:  result.Duration.Seconds(),
		Events:    len(events),
		Spawned:   result.Stats.Spawned,
		Clicks:    result.Stats.Clicks,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, "config.yaml"), cfg); err != nil {
		return "", err
	}
	if err := saveTrace(filepath.Join(runDir, "trace.csv"), events); err != nil {
		return "", err
	}
	if err := saveFrames(filepath.Join(runDir, "frames.csv"), result); err != nil {
		return "", err
	}
	return runID, nil
}

func saveTrace(path string, events []trace.Event) error {
	rec, err := trace.Create(path)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := rec.Record(ev); err != nil {
			rec.Close()
			return err
		}
	}
	return rec.Close()
}

func saveFrames(path string, result *playback.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "particles", "ripples", "cursor_x", "cursor_y"}); err != nil {
		return err
	}
	for i := range result.Particles {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(result.Particles[i], 'f', -1, 64),
			strconv.FormatFloat(result.Ripples[i], 'f', -1, 64),
			strconv.FormatFloat(result.Path[i].X, 'f', 3, 64),
			strconv.FormatFloat(result.Path[i].Y, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TracePath returns where a run's input trace is stored.
func (s *Store) TracePath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trace.csv")
}

// LoadConfig returns the configuration a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, "config.yaml"))
}

func sanitize(name string) string {
	name = filepath.Base(name)
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "run"
	}
	return string(out)
}
