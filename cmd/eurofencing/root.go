// cmd/eurofencing/root.go
package main

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
)

var (
	cfgFile string
	verbose bool

	runCtx    context.Context
	runCancel context.CancelFunc
	cancelMu  sync.Mutex
)

var rootCmd = &cobra.Command{
	Use:     "eurofencing",
	Short:   "Batch scraper for the EuroFencing federation site",
	Long: `eurofencing drives a headless browser through the EuroFencing fencer
search and individual rankings views, walking every configured filter
combination and exporting the accumulated records to files and optionally
to a database.`,
	Version: version(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	cancelMu.Lock()
	runCtx, runCancel = context.WithCancel(context.Background())
	cancelMu.Unlock()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cancelRun aborts the in-flight run; sweeps flush their partial batches on
// the way out.
func cancelRun() {
	cancelMu.Lock()
	defer cancelMu.Unlock()
	if runCancel != nil {
		runCancel()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig reads the configuration file named by --config, or the built-in
// defaults when the flag is unset. Environment overrides apply either way.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// Build metadata, set via -ldflags at release time.
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func version() string {
	return buildVersion + " (" + buildCommit + ")"
}
