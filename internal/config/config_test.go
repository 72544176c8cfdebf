// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scraping.BaseURL != "https://www.eurofencing.info" {
		t.Errorf("unexpected base URL: %s", cfg.Scraping.BaseURL)
	}
	if cfg.Scraping.RequestDelay != 2*time.Second {
		t.Errorf("unexpected request delay: %v", cfg.Scraping.RequestDelay)
	}
	if cfg.Scraping.CombinationDelay != 3*time.Second {
		t.Errorf("unexpected combination delay: %v", cfg.Scraping.CombinationDelay)
	}
	if !cfg.Scraping.Headless {
		t.Error("default config should be headless")
	}
	if got := cfg.Filters.Combinations(); got != 2*3*3*8 {
		t.Errorf("expected %d combinations, got %d", 2*3*3*8, got)
	}
	if len(cfg.PriorityCountries) != 15 {
		t.Errorf("expected 15 priority countries, got %d", len(cfg.PriorityCountries))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
scraping:
  base_url: https://www.eurofencing.info
  request_delay: 1s
  headless: false
filters:
  seasons: ["2024", "2023"]
export:
  formats: ["csv"]
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scraping.RequestDelay != time.Second {
		t.Errorf("request delay not overridden: %v", cfg.Scraping.RequestDelay)
	}
	if cfg.Scraping.Headless {
		t.Error("headless not overridden")
	}
	if len(cfg.Filters.Seasons) != 2 {
		t.Errorf("seasons not overridden: %v", cfg.Filters.Seasons)
	}
	// Untouched sections keep defaults.
	if len(cfg.Filters.Weapons) != 3 {
		t.Errorf("weapons should keep defaults: %v", cfg.Filters.Weapons)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_USER", "scraper")
	t.Setenv("DB_PORT", "3307")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Host != "db.example.com" {
		t.Errorf("DB_HOST not applied: %s", cfg.Database.Host)
	}
	if cfg.Database.User != "scraper" {
		t.Errorf("DB_USER not applied: %s", cfg.Database.User)
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("DB_PORT not applied: %d", cfg.Database.Port)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base URL", func(c *Config) { c.Scraping.BaseURL = "" }},
		{"malformed base URL", func(c *Config) { c.Scraping.BaseURL = "not a url" }},
		{"negative delay", func(c *Config) { c.Scraping.RequestDelay = -1 }},
		{"zero timeout", func(c *Config) { c.Scraping.Timeout = 0 }},
		{"no genders", func(c *Config) { c.Filters.Genders = nil }},
		{"no seasons", func(c *Config) { c.Filters.Seasons = nil }},
		{"bad format", func(c *Config) { c.Export.Formats = []string{"parquet"} }},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"sqlite without path", func(c *Config) { c.Database.Driver = "sqlite" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
