// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration. It mirrors the site's known
// filter dimensions and a pacing discipline the remote site tolerates.
func Default() *Config {
	return &Config{
		Scraping: ScrapingConfig{
			BaseURL:          "https://www.eurofencing.info",
			RequestDelay:     2 * time.Second,
			CombinationDelay: 3 * time.Second,
			Timeout:          30 * time.Second,
			MaxRetries:       3,
			Headless:         true,
			UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		Filters: FilterConfig{
			Genders:       []string{"men", "women"},
			Weapons:       []string{"foil", "epee", "sabre"},
			AgeCategories: []string{"cadet", "u23", "u14"},
			Seasons:       []string{"2025", "2024", "2023", "2022", "2021", "2020", "2019", "2018"},
		},
		PriorityCountries: []string{
			"QAT", "UAE", "SAU", "KUW", "BHR",
			"FRA", "ITA", "GER", "RUS", "HUN",
			"POL", "ESP", "GBR", "UKR", "USA",
		},
		Pagination: PaginationConfig{
			MaxPagesPerCountry: 100,
			MaxCountries:       10,
		},
		Export: ExportConfig{
			OutputDirectory: "./eurofencing_data",
			Formats:         []string{"csv", "json"},
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 3306,
			Name: "sportsanalytics",
		},
		Monitoring: MonitoringConfig{
			ListenAddress: ":9090",
		},
	}
}

// Load reads configuration from the given YAML file, layered over the
// defaults, then applies environment overrides. An empty path returns the
// defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays database credentials from the environment. Credentials
// belong in the environment, not in checked-in YAML.
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
}
