// Package activity persists user activity and access events as
// append-only JSON files, and derives the monthly rollups the admin
// reporting view consumes.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
)

// Ensure Log implements the interface.
var _ driven.ActivityLog = (*Log)(nil)

// Default file names within the data directory.
const (
	ActivityFileName = "activity_log.json"
	AccessFileName   = "access_log.json"
)

// Log is a file-backed activity log. Events are kept as one JSON array
// per file, read-modify-written under a lock; the volumes involved
// (user actions, not telemetry) keep this cheap.
type Log struct {
	mu           sync.Mutex
	activityPath string
	accessPath   string
	now          func() time.Time
}

// New creates an activity log rooted at dataDir, creating the directory
// if needed.
func New(dataDir string) (*Log, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Log{
		activityPath: filepath.Join(dataDir, ActivityFileName),
		accessPath:   filepath.Join(dataDir, AccessFileName),
		now:          time.Now,
	}, nil
}

// Record appends one activity event.
func (l *Log) Record(event string, fields map[string]string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var events []domain.ActivityEvent
	if err := readJSON(l.activityPath, &events); err != nil {
		return err
	}

	events = append(events, domain.ActivityEvent{
		Event:     event,
		Timestamp: l.now().UTC(),
		Fields:    fields,
	})
	return writeJSON(l.activityPath, events)
}

// RecordAccess counts one login against the current month.
func (l *Log) RecordAccess() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var months []string
	if err := readJSON(l.accessPath, &months); err != nil {
		return err
	}

	months = append(months, l.now().UTC().Format("2006-01"))
	return writeJSON(l.accessPath, months)
}

// Events returns all recorded activity events in append order.
func (l *Log) Events() ([]domain.ActivityEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var events []domain.ActivityEvent
	if err := readJSON(l.activityPath, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// MonthlyUsage returns login counts keyed by "YYYY-MM".
func (l *Log) MonthlyUsage() (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var months []string
	if err := readJSON(l.accessPath, &months); err != nil {
		return nil, err
	}

	usage := make(map[string]int, len(months))
	for _, m := range months {
		usage[m]++
	}
	return usage, nil
}

// readJSON loads a JSON file into out; a missing file leaves out empty.
func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
