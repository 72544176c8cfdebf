// internal/scraper/engine.go
package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kennymcmillan/eurofencing-scraper/internal/browser"
	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
	"github.com/kennymcmillan/eurofencing-scraper/internal/ratelimit"
	"github.com/kennymcmillan/eurofencing-scraper/internal/storage"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// Exporter writes finished batches to files.
type Exporter interface {
	Export(fencers []types.FencerProfile, rankings []types.RankingEntry) error
}

// siteSource extends PageSource with country discovery; the real
// implementation is PageFetcher.
type siteSource interface {
	PageSource
	DiscoverCountries(ctx context.Context) []string
}

// Summary reports what one run accumulated.
type Summary struct {
	Fencers      int
	Rankings     int
	Countries    int
	Combinations int
}

// Engine owns one scraping run end to end: open a browser session, sweep the
// requested views, and flush whatever accumulated through the exporter and
// the store. Sweeps degrade to partial results, so a run only fails outright
// when the session cannot be opened at all.
type Engine struct {
	cfg      *config.Config
	exporter Exporter
	store    storage.Store

	// Countries overrides country discovery when non-empty
	Countries []string

	// FencerFilters narrows the fencer search beyond the per-country value
	FencerFilters types.FencerFilters

	// MaxCombinations bounds the ranking sweep; 0 falls back to the
	// configured ceiling
	MaxCombinations int

	openSession func(browser.SessionConfig) (browser.Controller, error)
	newSource   func(ctrl browser.Controller, baseURL string) siteSource
}

// NewEngine builds an engine. store may be nil when persistence is disabled.
func NewEngine(cfg *config.Config, exporter Exporter, store storage.Store) *Engine {
	return &Engine{
		cfg:      cfg,
		exporter: exporter,
		store:    store,
		openSession: func(sc browser.SessionConfig) (browser.Controller, error) {
			return browser.New(sc)
		},
		newSource: func(ctrl browser.Controller, baseURL string) siteSource {
			return NewPageFetcher(ctrl, baseURL)
		},
	}
}

// Run executes the requested sweeps and flushes the results. Partial batches
// from a cancelled or degraded run are flushed like complete ones.
func (e *Engine) Run(ctx context.Context, scrapeFencers, scrapeRankings bool) (*Summary, error) {
	ctrl, err := e.connect()
	if err != nil {
		return nil, err
	}
	defer ctrl.Close()

	// The consent prompt appears once per browser profile; clear it before
	// any sweep starts interacting with form controls.
	if err := ctrl.Navigate(ctx, e.cfg.Scraping.BaseURL); err != nil {
		log.Warn().Err(err).Msg("initial navigation failed")
	} else {
		ctrl.DismissConsent(ctx)
	}

	source := e.newSource(ctrl, e.cfg.Scraping.BaseURL)

	enum := NewEnumerator(source, e.cfg.Filters,
		ratelimit.NewPacer(e.cfg.Scraping.RequestDelay),
		ratelimit.NewPacer(e.cfg.Scraping.CombinationDelay))
	enum.BaseFilters = e.FencerFilters
	enum.MaxPages = e.cfg.Pagination.MaxPagesPerCountry
	enum.MaxCombinations = e.MaxCombinations
	if enum.MaxCombinations == 0 {
		enum.MaxCombinations = e.cfg.Pagination.MaxCombinations
	}

	summary := &Summary{}
	var fencers []types.FencerProfile
	var rankings []types.RankingEntry

	if scrapeFencers {
		countries := e.countries(ctx, source)
		summary.Countries = len(countries)
		fencers = enum.SweepFencers(ctx, countries)
		summary.Fencers = len(fencers)
	}

	if scrapeRankings {
		rankings = enum.SweepRankings(ctx)
		summary.Rankings = len(rankings)
		summary.Combinations = e.cfg.Filters.Combinations()
		if enum.MaxCombinations > 0 && enum.MaxCombinations < summary.Combinations {
			summary.Combinations = enum.MaxCombinations
		}
	}

	if err := e.flush(fencers, rankings); err != nil {
		return summary, err
	}
	return summary, nil
}

// countries resolves the country list for the fencer sweep. An explicit list
// wins; otherwise discovery runs, falling back to the configured priority
// countries when it finds nothing. Discovered lists are bounded by the
// configured country ceiling.
func (e *Engine) countries(ctx context.Context, source siteSource) []string {
	if len(e.Countries) > 0 {
		return e.Countries
	}

	countries := source.DiscoverCountries(ctx)
	if len(countries) == 0 {
		log.Warn().Msg("country discovery found nothing, using priority countries")
		countries = e.cfg.PriorityCountries
	}
	if max := e.cfg.Pagination.MaxCountries; max > 0 && len(countries) > max {
		countries = countries[:max]
	}
	return countries
}

// connect opens the browser session, retrying up to the configured attempt
// ceiling. Session failure is the one fatal error in a run.
func (e *Engine) connect() (browser.Controller, error) {
	sc := browser.DefaultSessionConfig()
	sc.Headless = e.cfg.Scraping.Headless
	sc.Timeout = e.cfg.Scraping.Timeout
	if e.cfg.Scraping.UserAgent != "" {
		sc.UserAgent = e.cfg.Scraping.UserAgent
	}

	attempts := e.cfg.Scraping.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctrl, err := e.openSession(sc)
		if err == nil {
			return ctrl, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max", attempts).Msg("session open failed")
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}

// flush pushes both batches through the exporter and the store. Failures are
// collected rather than short-circuiting, so a broken database never costs
// the file export or vice versa.
func (e *Engine) flush(fencers []types.FencerProfile, rankings []types.RankingEntry) error {
	var errs []string

	if err := e.exporter.Export(fencers, rankings); err != nil {
		errs = append(errs, err.Error())
	}

	if e.store != nil {
		ctx := context.Background()
		if err := e.store.SaveFencers(ctx, fencers); err != nil {
			errs = append(errs, err.Error())
		}
		if err := e.store.SaveRankings(ctx, rankings); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("flush finished with errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
