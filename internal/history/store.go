package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/arbiter/internal/consensus"
)

// Record is one persisted debate outcome.
type Record struct {
	ID           string           `json:"id"`
	CreatedAt    time.Time        `json:"createdAt"`
	Request      string           `json:"request"`
	File         string           `json:"file,omitempty"`
	FocusAreas   []string         `json:"focusAreas,omitempty"`
	PrimaryName  string           `json:"primaryName"`
	CounterName  string           `json:"counterName"`
	PrimaryScore int              `json:"primaryScore"`
	CounterScore int              `json:"counterScore"`
	Consensus    consensus.Result `json:"consensus"`
	TotalTime    float64          `json:"totalTime"`
	CanProceed   bool             `json:"canProceed"`
}

// Store keeps one JSON file per debate record.
type Store struct {
	dir     string
	enabled bool
}

// New creates a Store. If dir is empty, the default history directory is used.
func New(enabled bool, dir string) (*Store, error) {
	if !enabled {
		return &Store{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultHistoryDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &Store{dir: dir, enabled: true}, nil
}

// Enabled reports whether history persistence is active.
func (s *Store) Enabled() bool { return s.enabled }

// Dir returns the history directory path.
func (s *Store) Dir() string { return s.dir }

// SaveDebate persists the record and returns its id. A missing id or timestamp
// is filled in. A disabled store still returns a usable id so the event stream
// can reference the debate.
func (s *Store) SaveDebate(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if !s.enabled {
		return rec.ID, nil
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return rec.ID, fmt.Errorf("marshaling debate record: %w", err)
	}
	path := filepath.Join(s.dir, rec.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rec.ID, fmt.Errorf("writing debate record: %w", err)
	}
	return rec.ID, nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns all records. Corrupted record files are skipped.
func (s *Store) Recent(limit int) ([]Record, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	if !s.enabled {
		return Record{}, fmt.Errorf("history is disabled")
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		return Record{}, fmt.Errorf("reading debate %s: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing debate %s: %w", id, err)
	}
	return rec, nil
}

// Stats aggregates the stored records.
type Stats struct {
	Total            int     `json:"totalDebates"`
	AverageScore     float64 `json:"averageConsensusScore"`
	ProceedRate      float64 `json:"proceedRate"`
	AverageTotalTime float64 `json:"averageTotalTime"`
}

// Statistics computes aggregates over every stored record.
func (s *Store) Statistics() (Stats, error) {
	records, err := s.readAll()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(records)}
	if len(records) == 0 {
		return stats, nil
	}
	var scoreSum, timeSum float64
	proceed := 0
	for _, rec := range records {
		scoreSum += float64(rec.Consensus.ConsensusScore)
		timeSum += rec.TotalTime
		if rec.CanProceed {
			proceed++
		}
	}
	n := float64(len(records))
	stats.AverageScore = scoreSum / n
	stats.ProceedRate = float64(proceed) / n
	stats.AverageTotalTime = timeSum / n
	return stats, nil
}

func (s *Store) readAll() ([]Record, error) {
	if !s.enabled || s.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading history directory: %w", err)
	}
	var records []Record
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func defaultHistoryDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbiter", "history"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "arbiter", "history"), nil
}
