package config

import (
	"fmt"
	"os"

	"architect-report/internal/leanix"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML report file.
type FileConfig struct {
	Report ReportSettings `toml:"report"`
}

// ReportSettings maps the [report] table.
type ReportSettings struct {
	Title     string        `toml:"title"`
	Formats   []string      `toml:"formats"`
	OutputDir string        `toml:"output_dir"`
	Facets    []FacetConfig `toml:"facets"`
}

// FacetConfig is one [[report.facets]] entry.
type FacetConfig struct {
	FacetKey string   `toml:"facet_key"`
	Operator string   `toml:"operator"`
	Keys     []string `toml:"keys"`
}

// LoadReportFile reads the TOML report file. Missing file is not an error.
func LoadReportFile(path string) (ReportSettings, error) {
	if path == "" {
		return ReportSettings{}, fmt.Errorf("report file path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ReportSettings{}, nil
		}
		return ReportSettings{}, fmt.Errorf("failed to stat report file: %w", err)
	}

	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ReportSettings{}, fmt.Errorf("failed to decode report file: %w", err)
	}
	for i, f := range cfg.Report.Facets {
		switch f.Operator {
		case leanix.OperatorOR, leanix.OperatorAND, leanix.OperatorNOR:
		default:
			return ReportSettings{}, fmt.Errorf("report file: facet %d (%s) has unknown operator %q", i, f.FacetKey, f.Operator)
		}
	}
	return cfg.Report, nil
}

// DefaultSelection returns the facet selection configured in the report file, or
// the zero selection (which queries with the built-in defaults) when none is set.
func (s ReportSettings) DefaultSelection() leanix.FacetSelection {
	if len(s.Facets) == 0 {
		return leanix.FacetSelection{}
	}
	facets := make([]leanix.FacetFilter, len(s.Facets))
	for i, f := range s.Facets {
		facets[i] = leanix.FacetFilter{FacetKey: f.FacetKey, Operator: f.Operator, Keys: f.Keys}
	}
	return leanix.FacetSelection{Facets: facets}
}
