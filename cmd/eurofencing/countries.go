// cmd/eurofencing/countries.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kennymcmillan/eurofencing-scraper/internal/browser"
	"github.com/kennymcmillan/eurofencing-scraper/internal/scraper"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Discover the country codes offered by the fencer search",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		sc := browser.DefaultSessionConfig()
		sc.Headless = cfg.Scraping.Headless
		sc.Timeout = cfg.Scraping.Timeout

		session, err := browser.New(sc)
		if err != nil {
			return err
		}
		defer session.Close()

		fetcher := scraper.NewPageFetcher(session, cfg.Scraping.BaseURL)
		countries := fetcher.DiscoverCountries(runCtx)
		if len(countries) == 0 {
			fmt.Fprintln(os.Stderr, "no countries discovered")
			return nil
		}

		for _, code := range countries {
			fmt.Fprintln(os.Stdout, code)
		}
		fmt.Fprintf(os.Stderr, "%d countries\n", len(countries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}
