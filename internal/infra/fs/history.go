package fs

// Local snapshot history under data_out
// Keeps one dated entry per fetch so a previous snapshot is available
// even when the API returns a single one

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tierwatch/internal/infra/log"
	"tierwatch/internal/tiers"

	"go.uber.org/zap"
)

// maxHistoryEntries bounds the history file; oldest entries are dropped.
const maxHistoryEntries = 90

type HistoryEntry struct {
	Date  string           `json:"date"` // YYYY-MM-DD
	Tiers []tiers.TierStat `json:"tiers"`
}

type HistoryData struct {
	Entries []HistoryEntry `json:"entries"`
}

// Store reads and writes the distribution history file.
type Store struct {
	dataDir string
}

func NewStore(dataDir string) *Store {
	if dataDir == "" {
		dataDir = "data_out"
	}
	return &Store{dataDir: dataDir}
}

func (s *Store) historyFile() string {
	return filepath.Join(s.dataDir, "tiers_module", "distribution_history.json")
}

// Load returns the stored history; a missing or empty file yields an
// empty history, not an error.
func (s *Store) Load() (*HistoryData, error) {
	data, err := os.ReadFile(s.historyFile())
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryData{Entries: []HistoryEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if len(data) == 0 {
		return &HistoryData{Entries: []HistoryEntry{}}, nil
	}

	var history HistoryData
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history data: %w", err)
	}
	if history.Entries == nil {
		history.Entries = []HistoryEntry{}
	}

	return &history, nil
}

// Save records the snapshot for a date, replacing an existing entry for
// the same date.
func (s *Store) Save(date string, snapshot []tiers.TierStat) error {
	if date == "" {
		return fmt.Errorf("date is required")
	}

	history, err := s.Load()
	if err != nil {
		log.LogWarn("Failed to load history, starting fresh", zap.Error(err))
		history = &HistoryData{Entries: []HistoryEntry{}}
	}

	entry := HistoryEntry{Date: date, Tiers: snapshot}
	found := false
	for i := range history.Entries {
		if history.Entries[i].Date == date {
			history.Entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		history.Entries = append(history.Entries, entry)
	}

	if len(history.Entries) > maxHistoryEntries {
		history.Entries = history.Entries[len(history.Entries)-maxHistoryEntries:]
	}

	if err := os.MkdirAll(filepath.Dir(s.historyFile()), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	dataBytes, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history data: %w", err)
	}

	if err := os.WriteFile(s.historyFile(), dataBytes, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	log.LogDebug("Distribution snapshot saved",
		zap.String("date", date),
		zap.Int("tiers", len(snapshot)),
		zap.Int("historyEntries", len(history.Entries)))

	return nil
}

// PreviousFor returns the newest stored snapshot strictly older than
// date, or nil when none exists.
func (s *Store) PreviousFor(date string) ([]tiers.TierStat, error) {
	history, err := s.Load()
	if err != nil {
		return nil, err
	}

	var best *HistoryEntry
	for i := range history.Entries {
		e := &history.Entries[i]
		if e.Date >= date {
			continue
		}
		if best == nil || e.Date > best.Date {
			best = e
		}
	}
	if best == nil {
		return nil, nil
	}
	return best.Tiers, nil
}
