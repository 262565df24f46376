package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/shatter/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Dump is a committed simulation snapshot plus the match context needed
// to make sense of it offline.
type Dump struct {
	Version int    `json:"version"`
	Seed    int64  `json:"seed"`
	Reason  string `json:"reason,omitempty"`

	HalfWidth  float32 `json:"half_width"`
	HalfHeight float32 `json:"half_height"`

	State     components.Snapshot `json:"state"`
	Bookmarks []Bookmark          `json:"bookmarks,omitempty"`
}

// SaveSnapshot writes a dump to dir and returns the file path.
func SaveSnapshot(dump *Dump, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", dump.State.Tick)
	if dump.Reason != "" {
		name += "_" + strings.ReplaceAll(dump.Reason, " ", "_")
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a dump from disk.
func LoadSnapshot(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if dump.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", dump.Version)
	}
	return &dump, nil
}
