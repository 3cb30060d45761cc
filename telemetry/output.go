package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/s-lawrence/autopoiesis/config"
)

// csvLog is one append-only CSV file. The first append writes the gocsv
// header row, later appends skip it.
type csvLog struct {
	file      *os.File
	hasHeader bool
}

func createLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{file: f}, nil
}

func (l *csvLog) append(records any) error {
	if l.hasHeader {
		return gocsv.MarshalWithoutHeaders(records, l.file)
	}
	if err := gocsv.Marshal(records, l.file); err != nil {
		return err
	}
	l.hasHeader = true
	return nil
}

// OutputManager owns the CSV logs and config snapshot for one run.
type OutputManager struct {
	dir     string
	window  *csvLog
	perf    *csvLog
	unities *csvLog
}

// NewOutputManager creates the output directory and its log files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.window, err = createLog(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = createLog(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.unities, err = createLog(dir, "unities.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.window.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteUnities writes the full unity history to unities.csv. Called once
// at end of run.
func (om *OutputManager) WriteUnities(rows []UnityRow) error {
	if om == nil {
		return nil
	}
	if err := om.unities.append(rows); err != nil {
		return fmt.Errorf("writing unities: %w", err)
	}
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
	for _, l := range []*csvLog{om.window, om.perf, om.unities} {
		if l == nil {
			continue
		}
		if err := l.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
