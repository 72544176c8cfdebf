// internal/config/types.go

// Package config provides the static configuration for a scraping run:
// target site, pacing, filter enumerations, export formats, and the storage
// backend. Configuration is loaded once at engine construction and never
// reloaded during a run.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Scraping controls the browser session and request pacing
	Scraping ScrapingConfig `yaml:"scraping" json:"scraping"`

	// Filters hold the enumerations the combination sweeps walk over
	Filters FilterConfig `yaml:"filters" json:"filters"`

	// PriorityCountries is the fixed country set used for targeted fencer
	// sweeps and as the fallback when country discovery finds nothing
	PriorityCountries []string `yaml:"priority_countries" json:"priority_countries"`

	// Pagination bounds the fencer sweep
	Pagination PaginationConfig `yaml:"pagination" json:"pagination"`

	// Export controls file output
	Export ExportConfig `yaml:"export" json:"export"`

	// Database selects and configures the storage backend
	Database DatabaseConfig `yaml:"database" json:"database"`

	// Monitoring configures the optional metrics endpoint
	Monitoring MonitoringConfig `yaml:"monitoring" json:"monitoring"`
}

// ScrapingConfig controls the browser session and request pacing.
type ScrapingConfig struct {
	// BaseURL is the root of the target site
	BaseURL string `yaml:"base_url" json:"base_url"`

	// RequestDelay is the fixed pause between page requests within one
	// country sweep. It is a rate-limiting courtesy toward the remote
	// site, not a tunable performance knob.
	RequestDelay time.Duration `yaml:"request_delay" json:"request_delay"`

	// CombinationDelay is the pause between ranking combinations; ranking
	// pages are heavier to render than paginated lists
	CombinationDelay time.Duration `yaml:"combination_delay" json:"combination_delay"`

	// Timeout bounds every wait for a page element to materialize
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// MaxRetries bounds session-open attempts
	MaxRetries int `yaml:"max_retries" json:"max_retries"`

	// Headless runs the browser without a visible window
	Headless bool `yaml:"headless" json:"headless"`

	// UserAgent sent by the browser
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// FilterConfig holds the filter dimension enumerations.
type FilterConfig struct {
	Genders       []string `yaml:"genders" json:"genders"`
	Weapons       []string `yaml:"weapons" json:"weapons"`
	AgeCategories []string `yaml:"age_categories" json:"age_categories"`
	Seasons       []string `yaml:"seasons" json:"seasons"`
}

// Combinations returns the size of the full ranking cross-product.
func (f FilterConfig) Combinations() int {
	return len(f.Genders) * len(f.Weapons) * len(f.AgeCategories) * len(f.Seasons)
}

// PaginationConfig bounds the paginated fencer sweep.
type PaginationConfig struct {
	// MaxPagesPerCountry is the page ceiling per country; 0 means no ceiling
	MaxPagesPerCountry int `yaml:"max_pages_per_country" json:"max_pages_per_country"`

	// MaxCountries bounds the prefix of the discovered country list used
	// when no explicit country set is supplied
	MaxCountries int `yaml:"max_countries" json:"max_countries"`

	// MaxCombinations bounds the ranking sweep; 0 means the full
	// cross-product
	MaxCombinations int `yaml:"max_combinations" json:"max_combinations"`
}

// ExportConfig controls file output.
type ExportConfig struct {
	// OutputDirectory receives the timestamped export files
	OutputDirectory string `yaml:"output_directory" json:"output_directory"`

	// Formats is the set of file formats to write (csv, json, excel)
	Formats []string `yaml:"formats" json:"formats"`

	// Encoding names the text encoding for delimited output; empty or
	// "utf-8" writes plain UTF-8
	Encoding string `yaml:"encoding,omitempty" json:"encoding,omitempty"`
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	// Driver is one of mysql, postgres, sqlite, mongodb, or empty to
	// disable storage entirely
	Driver string `yaml:"driver" json:"driver"`

	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	Name     string `yaml:"name" json:"name"`

	// Path is the database file for the sqlite driver
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// URI overrides host/port/user/password for the mongodb driver
	URI string `yaml:"uri,omitempty" json:"uri,omitempty"`
}

// MonitoringConfig configures the optional metrics endpoint.
type MonitoringConfig struct {
	// Enabled starts an HTTP server exposing /metrics and /healthz
	Enabled bool `yaml:"enabled" json:"enabled"`

	// ListenAddress for the metrics server
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
}
