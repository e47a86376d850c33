// Package report aggregates architect subscriptions into per-person completion counts
// and projects them into chart series.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"architect-report/internal/completion"
)

// ErrInvalidPerson is returned when a positional index does not resolve to a person.
var ErrInvalidPerson = errors.New("invalid architect id")

// Report is the result of one query-aggregate-project run. It is owned by the
// caller and shared by the renderers and the navigator.
type Report struct {
	People      []PersonAggregate  `json:"people"`
	Levels      []completion.Level `json:"levels"`
	Series      []Series           `json:"-"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// Build aggregates records and projects the result.
func Build(records []Record) *Report {
	people, levels := Aggregate(records)
	return &Report{
		People:      people,
		Levels:      levels,
		Series:      Project(people, levels),
		GeneratedAt: time.Now(),
	}
}

// Labels returns one display name per person, in chart order.
func (r *Report) Labels() []string {
	labels := make([]string, len(r.People))
	for i, p := range r.People {
		labels[i] = p.Name
	}
	return labels
}

// PersonAt resolves the bar at index back to its person.
func (r *Report) PersonAt(index int) (PersonAggregate, error) {
	if r == nil || index < 0 || index >= len(r.People) {
		return PersonAggregate{}, fmt.Errorf("%w: index %d", ErrInvalidPerson, index)
	}
	return r.People[index], nil
}

// MaxTotal returns the tallest stacked bar.
func (r *Report) MaxTotal() int {
	maxVal := 0
	for _, p := range r.People {
		if t := p.Total(); t > maxVal {
			maxVal = t
		}
	}
	return maxVal
}

// SnapshotFile is the name of the persisted last report inside the cache directory.
const SnapshotFile = "last-report.json"

// SaveSnapshot writes the report to dir/SnapshotFile.
func SaveSnapshot(dir string, r *Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(dir, SnapshotFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot reads a report saved by SaveSnapshot and re-projects its series.
func LoadSnapshot(dir string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no report snapshot in %s, run 'report' first", dir)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	for i := range r.People {
		if r.People[i].Counts == nil {
			r.People[i].Counts = make(map[completion.Level]int)
		}
	}
	if r.Levels == nil {
		r.Levels = []completion.Level{}
	}
	r.Series = Project(r.People, r.Levels)
	return &r, nil
}
