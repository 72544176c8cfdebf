// cmd/eurofencing/scrape.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kennymcmillan/eurofencing-scraper/internal/monitoring"
	"github.com/kennymcmillan/eurofencing-scraper/internal/output"
	"github.com/kennymcmillan/eurofencing-scraper/internal/scraper"
	"github.com/kennymcmillan/eurofencing-scraper/internal/storage"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

var (
	maxPages        int
	maxCombinations int
	countryList     []string
	formats         []string
	outputDir       string
	headed          bool
	firstName       string
	lastName        string
	genderFilter    string
)

var fencersCmd = &cobra.Command{
	Use:   "fencers",
	Short: "Sweep the fencer search, one country at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(true, false)
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Sweep the individual rankings across every filter combination",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(false, true)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run both the fencer and the rankings sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(true, true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{fencersCmd, rankingsCmd, allCmd} {
		cmd.Flags().IntVar(&maxPages, "max-pages", 0, "page ceiling per country (0 = config default)")
		cmd.Flags().IntVar(&maxCombinations, "max-combinations", 0, "combination ceiling for the rankings sweep (0 = unbounded)")
		cmd.Flags().StringSliceVar(&countryList, "countries", nil, "country codes to sweep instead of discovering them")
		cmd.Flags().StringSliceVar(&formats, "formats", nil, "export formats (csv, json, excel)")
		cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for export files")
		cmd.Flags().BoolVar(&headed, "headed", false, "run the browser with a visible window")
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{fencersCmd, allCmd} {
		cmd.Flags().StringVar(&firstName, "first-name", "", "narrow the fencer search by first name")
		cmd.Flags().StringVar(&lastName, "last-name", "", "narrow the fencer search by last name")
		cmd.Flags().StringVar(&genderFilter, "gender", "", "narrow the fencer search by gender (men, women)")
	}
}

func runScrape(fencers, rankings bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if maxPages > 0 {
		cfg.Pagination.MaxPagesPerCountry = maxPages
	}
	if len(formats) > 0 {
		cfg.Export.Formats = formats
	}
	if outputDir != "" {
		cfg.Export.OutputDirectory = outputDir
	}
	if headed {
		cfg.Scraping.Headless = false
	}

	var metrics *monitoring.Server
	if cfg.Monitoring.Enabled {
		metrics = monitoring.NewServer(cfg.Monitoring.ListenAddress)
		metrics.Start()
		defer metrics.Stop()
	}

	store, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	engine := scraper.NewEngine(cfg, output.NewManager(cfg.Export), store)
	engine.Countries = countryList
	engine.MaxCombinations = maxCombinations
	engine.FencerFilters = types.FencerFilters{
		FirstName: firstName,
		LastName:  lastName,
		Gender:    genderFilter,
	}

	summary, err := engine.Run(runCtx, fencers, rankings)
	if summary != nil {
		printSummary(summary, fencers, rankings)
	}
	if err != nil {
		log.Error().Err(err).Msg("run finished with errors")
		return err
	}
	return nil
}

func printSummary(s *scraper.Summary, fencers, rankings bool) {
	fmt.Fprintln(os.Stdout, strings.Repeat("=", 40))
	fmt.Fprintln(os.Stdout, "Scrape summary")
	if fencers {
		fmt.Fprintf(os.Stdout, "  Countries swept:  %d\n", s.Countries)
		fmt.Fprintf(os.Stdout, "  Fencers found:    %d\n", s.Fencers)
	}
	if rankings {
		fmt.Fprintf(os.Stdout, "  Combinations:     %d\n", s.Combinations)
		fmt.Fprintf(os.Stdout, "  Ranking entries:  %d\n", s.Rankings)
	}
	fmt.Fprintln(os.Stdout, strings.Repeat("=", 40))
}
