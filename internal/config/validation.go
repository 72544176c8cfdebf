// internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validFormats = map[string]bool{
	"csv":   true,
	"json":  true,
	"excel": true,
}

var validDrivers = map[string]bool{
	"":         true, // storage disabled
	"mysql":    true,
	"postgres": true,
	"sqlite":   true,
	"mongodb":  true,
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Scraping.BaseURL == "" {
		return fmt.Errorf("scraping.base_url is required")
	}
	parsed, err := url.Parse(c.Scraping.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("scraping.base_url %q is not a valid URL", c.Scraping.BaseURL)
	}

	if c.Scraping.RequestDelay < 0 {
		return fmt.Errorf("scraping.request_delay must not be negative")
	}
	if c.Scraping.CombinationDelay < 0 {
		return fmt.Errorf("scraping.combination_delay must not be negative")
	}
	if c.Scraping.Timeout <= 0 {
		return fmt.Errorf("scraping.timeout must be positive")
	}
	if c.Scraping.MaxRetries < 0 {
		return fmt.Errorf("scraping.max_retries must not be negative")
	}

	if len(c.Filters.Genders) == 0 {
		return fmt.Errorf("filters.genders must not be empty")
	}
	if len(c.Filters.Weapons) == 0 {
		return fmt.Errorf("filters.weapons must not be empty")
	}
	if len(c.Filters.AgeCategories) == 0 {
		return fmt.Errorf("filters.age_categories must not be empty")
	}
	if len(c.Filters.Seasons) == 0 {
		return fmt.Errorf("filters.seasons must not be empty")
	}

	if c.Pagination.MaxPagesPerCountry < 0 {
		return fmt.Errorf("pagination.max_pages_per_country must not be negative")
	}
	if c.Pagination.MaxCombinations < 0 {
		return fmt.Errorf("pagination.max_combinations must not be negative")
	}

	for _, format := range c.Export.Formats {
		if !validFormats[strings.ToLower(format)] {
			return fmt.Errorf("export format %q is not supported (csv, json, excel)", format)
		}
	}

	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("database driver %q is not supported (mysql, postgres, sqlite, mongodb)", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("database.path is required for the sqlite driver")
	}

	if c.Monitoring.Enabled && c.Monitoring.ListenAddress == "" {
		return fmt.Errorf("monitoring.listen_address is required when monitoring is enabled")
	}

	return nil
}
