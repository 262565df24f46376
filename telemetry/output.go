package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/shatter/config"
)

// OutputManager writes run output as CSV files in one directory.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	statsFile *os.File
	perfFile  *os.File
	matchFile *os.File

	statsHeaderWritten bool
	perfHeaderWritten  bool
	matchHeaderWritten bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		name string
		dst  **os.File
	}{
		{"stats.csv", &om.statsFile},
		{"perf.csv", &om.perfFile},
		{"matches.csv", &om.matchFile},
	}
	for _, f := range files {
		fh, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		*f.dst = fh
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.statsFile, []WindowStats{stats}, &om.statsHeaderWritten); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.perfFile, []PerfStatsCSV{stats.ToCSV(windowEnd)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteMatch appends a finished match to matches.csv.
func (om *OutputManager) WriteMatch(m MatchSummary) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.matchFile, []MatchSummary{m}, &om.matchHeaderWritten); err != nil {
		return fmt.Errorf("writing match: %w", err)
	}
	return nil
}

// writeRecords writes the header only on the first call for a file.
func writeRecords(w io.Writer, records any, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, w)
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.statsFile, om.perfFile, om.matchFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
