package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	snoozeFileName = "snooze.yaml"
	// DefaultSnooze is how long a "Not now" answer silences the banner.
	DefaultSnooze = 24 * time.Hour
)

// Snooze remembers a "Not now" answer for one latest version until it expires.
type Snooze struct {
	path   string
	period time.Duration
	now    func() time.Time
}

type snoozeRecord struct {
	Version string    `yaml:"version"`
	Until   time.Time `yaml:"until"`
}

// NewSnooze keeps its record in dir and silences for DefaultSnooze.
func NewSnooze(dir string) *Snooze {
	return &Snooze{
		path:   filepath.Join(dir, snoozeFileName),
		period: DefaultSnooze,
		now:    time.Now,
	}
}

// Dismiss silences notices about latest for the snooze period.
func (s *Snooze) Dismiss(latest string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := yaml.Marshal(snoozeRecord{Version: latest, Until: s.now().Add(s.period)})
	if err != nil {
		return fmt.Errorf("marshaling snooze: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing snooze: %w", err)
	}
	return nil
}

// Active reports whether notices about latest are silenced. A missing or
// unreadable record never silences, and a different latest version breaks
// the snooze.
func (s *Snooze) Active(latest string) bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	var rec snoozeRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return false
	}
	return rec.Version == latest && s.now().Before(rec.Until)
}
