package dataset

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"lebstories.aub.edu.lb/internal/appconf"
)

// Well-known dataset ids from the default catalog.
const (
	DebtServiceID    = "debt-service"
	HepatitisCasesID = "hepatitis-cases"
)

// Dataset kinds. The kind decides how rows are parsed and which table the
// normalized records land in.
const (
	KindAnnual  = "annual"  // one numeric value per year
	KindMonthly = "monthly" // integer counts in MM-YYYY buckets
)

// Config holds configuration options for the Manager
type Config struct {
	CatalogPath     string // Path to the YAML dataset catalog
	DataPath        string // Path to the SQLite database file
	Env             appconf.Environment
	Verbose         bool
	RefreshInterval time.Duration // How often remote sources are re-fetched
}

// Catalog is the parsed dataset catalog file.
type Catalog struct {
	Datasets []DatasetConfig `yaml:"datasets"`
}

// DatasetConfig describes one dataset: where its CSV lives, how to read it,
// and how to present it.
type DatasetConfig struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Source          string `yaml:"source"`
	Kind            string `yaml:"kind"`
	Chart           string `yaml:"chart"`
	TimeColumn      string `yaml:"time_column"`
	ValueColumn     string `yaml:"value_column"`
	IndicatorColumn string `yaml:"indicator_column,omitempty"`
	IndicatorCode   string `yaml:"indicator_code,omitempty"`
	MinYear         int    `yaml:"min_year"`
	MaxYear         int    `yaml:"max_year"`
	SeriesName      string `yaml:"series_name"`
	YAxis           string `yaml:"y_axis"`
}

// LoadCatalog reads and validates the dataset catalog file.
func LoadCatalog(path string) (Catalog, error) {
	var catalog Catalog

	b, err := os.ReadFile(path)
	if err != nil {
		return catalog, fmt.Errorf("error reading dataset catalog: %w", err)
	}

	if err := yaml.Unmarshal(b, &catalog); err != nil {
		return catalog, fmt.Errorf("error parsing dataset catalog: %w", err)
	}

	if len(catalog.Datasets) == 0 {
		return catalog, fmt.Errorf("dataset catalog %s declares no datasets", path)
	}

	seen := make(map[string]bool)
	for i := range catalog.Datasets {
		ds := &catalog.Datasets[i]

		if ds.ID == "" {
			return catalog, fmt.Errorf("dataset %d has no id", i)
		}
		if seen[ds.ID] {
			return catalog, fmt.Errorf("duplicate dataset id %q", ds.ID)
		}
		seen[ds.ID] = true

		if ds.Source == "" {
			return catalog, fmt.Errorf("dataset %q has no source", ds.ID)
		}
		if ds.TimeColumn == "" || ds.ValueColumn == "" {
			return catalog, fmt.Errorf("dataset %q must declare time_column and value_column", ds.ID)
		}
		if ds.MinYear > ds.MaxYear {
			return catalog, fmt.Errorf("dataset %q has min_year %d after max_year %d", ds.ID, ds.MinYear, ds.MaxYear)
		}

		switch ds.Kind {
		case KindAnnual:
			if ds.Chart == "" {
				ds.Chart = "line"
			}
		case KindMonthly:
			if ds.Chart == "" {
				ds.Chart = "bar"
			}
		default:
			return catalog, fmt.Errorf("dataset %q has unknown kind %q", ds.ID, ds.Kind)
		}

		if ds.Chart != "line" && ds.Chart != "bar" {
			return catalog, fmt.Errorf("dataset %q has unknown chart style %q", ds.ID, ds.Chart)
		}
	}

	return catalog, nil
}
