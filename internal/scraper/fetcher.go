// internal/scraper/fetcher.go
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/kennymcmillan/eurofencing-scraper/internal/browser"
	"github.com/kennymcmillan/eurofencing-scraper/internal/monitoring"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// Site paths under the base URL.
const (
	fencersPath  = "/competitions/fencers"
	rankingsPath = "/rankings/individual-rankings"
)

// selectSettleDelay is the pause after setting one ranking filter. Selecting
// one filter repopulates later selects, so each selection must settle before
// the next.
const selectSettleDelay = time.Second

// pageSettleDelay is the pause after clicking a page-number affordance.
const pageSettleDelay = 3 * time.Second

// rankingFilters maps each logical ranking filter onto the document-order
// index of the page's select controls. The selects carry no stable names, so
// this positional table is the single place to touch if the UI changes.
var rankingFilters = []struct {
	name  string
	index int
	value func(types.Combination) string
}{
	{"gender", 0, func(c types.Combination) string { return c.Gender }},
	{"weapon", 1, func(c types.Combination) string { return c.Weapon }},
	{"age", 2, func(c types.Combination) string { return c.AgeCategory }},
	{"season", 3, func(c types.Combination) string { return c.Season }},
	{"country", 4, func(c types.Combination) string { return c.Country }},
}

// PageFetcher drives one filtered search at a time against the site through
// a browser Controller. It owns no accumulated state; records are returned
// to the caller per page.
type PageFetcher struct {
	ctrl    browser.Controller
	baseURL string

	selectSettle time.Duration
	pageSettle   time.Duration
}

// NewPageFetcher creates a fetcher over the given session.
func NewPageFetcher(ctrl browser.Controller, baseURL string) *PageFetcher {
	return &PageFetcher{
		ctrl:         ctrl,
		baseURL:      strings.TrimRight(baseURL, "/"),
		selectSettle: selectSettleDelay,
		pageSettle:   pageSettleDelay,
	}
}

// FetchFencerPage executes one filtered fencer search and returns the typed
// records of the requested result page. Interaction failures and exhausted
// pagination both yield an empty slice: a single UI hiccup must not abort a
// sweep, and an absent page-number affordance is the pagination-exhaustion
// signal.
func (f *PageFetcher) FetchFencerPage(ctx context.Context, page int, filters types.FencerFilters) []types.FencerProfile {
	monitoring.PagesFetched.Inc()

	profiles, err := f.fencerPage(ctx, page, filters)
	if err != nil {
		monitoring.InteractionFailures.Inc()
		log.Warn().Err(err).Int("page", page).Str("country", filters.Country).
			Msg("fencer page degraded to empty")
		return nil
	}
	log.Info().Int("page", page).Str("country", filters.Country).
		Int("fencers", len(profiles)).Msg("fencer page scraped")
	return profiles
}

func (f *PageFetcher) fencerPage(ctx context.Context, page int, filters types.FencerFilters) ([]types.FencerProfile, error) {
	if err := f.ctrl.Navigate(ctx, f.baseURL+fencersPath); err != nil {
		return nil, &InteractionError{Op: "navigate fencers", Err: err}
	}

	if filters.Country != "" {
		if err := f.ctrl.SelectValue(ctx, `select[name="country"]`, filters.Country); err != nil {
			return nil, &InteractionError{Op: "select country", Err: err}
		}
	}
	if filters.FirstName != "" {
		if err := f.ctrl.SetText(ctx, `input[name="firstName"]`, filters.FirstName); err != nil {
			return nil, &InteractionError{Op: "set first name", Err: err}
		}
	}
	if filters.LastName != "" {
		if err := f.ctrl.SetText(ctx, `input[name="lastName"]`, filters.LastName); err != nil {
			return nil, &InteractionError{Op: "set last name", Err: err}
		}
	}
	if filters.Gender != "" {
		if err := f.ctrl.SelectValue(ctx, `select[name="gender"]`, filters.Gender); err != nil {
			return nil, &InteractionError{Op: "select gender", Err: err}
		}
	}

	if err := f.ctrl.Click(ctx, `button[type="submit"]`); err != nil {
		return nil, &InteractionError{Op: "submit search", Err: err}
	}
	if err := f.ctrl.WaitVisible(ctx, "table"); err != nil {
		return nil, &InteractionError{Op: "wait for results", Err: err}
	}

	if page > 1 {
		// No affordance for the requested page means the previous page was
		// the last one.
		if err := f.ctrl.Click(ctx, fmt.Sprintf(`a[data-page="%d"]`, page)); err != nil {
			log.Debug().Int("page", page).Msg("page affordance not found, pagination exhausted")
			return nil, nil
		}
		settle(ctx, f.pageSettle)
	}

	html, err := f.ctrl.OuterHTML(ctx)
	if err != nil {
		return nil, &InteractionError{Op: "read results", Err: err}
	}

	rows, err := extractTableRows(html)
	if err != nil {
		return nil, &InteractionError{Op: "parse results table", Err: err}
	}

	var profiles []types.FencerProfile
	for _, cells := range rows {
		profile, err := ParseFencerRow(cells, filters.Gender)
		if err != nil {
			monitoring.ParseFailures.WithLabelValues("fencer").Inc()
			log.Warn().Err(err).Msg("skipping fencer row")
			continue
		}
		monitoring.RowsParsed.WithLabelValues("fencer").Inc()
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// FetchRankingsPage executes one ranking search for the given filter
// combination. All filter dimensions except country are mandatory and are
// applied through the positional select mapping. Interaction failures
// degrade to an empty result.
func (f *PageFetcher) FetchRankingsPage(ctx context.Context, combo types.Combination) []types.RankingEntry {
	monitoring.CombinationsCompleted.Inc()

	entries, err := f.rankingsPage(ctx, combo)
	if err != nil {
		monitoring.InteractionFailures.Inc()
		log.Warn().Err(err).Stringer("combination", combo).Msg("ranking combination degraded to empty")
		return nil
	}
	log.Info().Stringer("combination", combo).Int("rankings", len(entries)).Msg("rankings scraped")
	return entries
}

func (f *PageFetcher) rankingsPage(ctx context.Context, combo types.Combination) ([]types.RankingEntry, error) {
	if err := f.ctrl.Navigate(ctx, f.baseURL+rankingsPath); err != nil {
		return nil, &InteractionError{Op: "navigate rankings", Err: err}
	}

	for _, filter := range rankingFilters {
		value := filter.value(combo)
		if value == "" {
			continue // country is optional
		}
		if err := f.ctrl.SelectValueAt(ctx, filter.index, value); err != nil {
			return nil, &InteractionError{Op: "select " + filter.name, Err: err}
		}
		settle(ctx, f.selectSettle)
	}

	if err := f.ctrl.Click(ctx, `button[type="submit"]`); err != nil {
		return nil, &InteractionError{Op: "submit search", Err: err}
	}
	if err := f.ctrl.WaitVisible(ctx, "table"); err != nil {
		return nil, &InteractionError{Op: "wait for results", Err: err}
	}

	html, err := f.ctrl.OuterHTML(ctx)
	if err != nil {
		return nil, &InteractionError{Op: "read results", Err: err}
	}

	rows, err := extractTableRows(html)
	if err != nil {
		return nil, &InteractionError{Op: "parse results table", Err: err}
	}

	var entries []types.RankingEntry
	for _, cells := range rows {
		entry, err := ParseRankingRow(cells, combo)
		if err != nil {
			monitoring.ParseFailures.WithLabelValues("ranking").Inc()
			log.Warn().Err(err).Msg("skipping ranking row")
			continue
		}
		monitoring.RowsParsed.WithLabelValues("ranking").Inc()
		entries = append(entries, entry)
	}
	return entries, nil
}

// extractTableRows pulls the cell texts of every data row of the first
// results table. Header rows carry th cells, not td, so they drop out
// naturally.
func extractTableRows(html string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no results table in page")
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows, nil
}

// settle pauses for the given duration, returning early on cancellation.
func settle(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
