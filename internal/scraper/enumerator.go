// internal/scraper/enumerator.go
package scraper

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
	"github.com/kennymcmillan/eurofencing-scraper/internal/ratelimit"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// PageSource is the slice of the PageFetcher the enumerator depends on,
// split out so sweeps can be tested without a browser.
type PageSource interface {
	FetchFencerPage(ctx context.Context, page int, filters types.FencerFilters) []types.FencerProfile
	FetchRankingsPage(ctx context.Context, combo types.Combination) []types.RankingEntry
}

// Enumerator walks either the country list (fencer sweep) or the filter
// cross-product (ranking sweep), invoking the page source once per unit and
// accumulating the results. Accumulated records are explicit return values,
// never ambient state, so a future multi-session extension has nothing
// shared to corrupt.
type Enumerator struct {
	source     PageSource
	filters    config.FilterConfig
	pagePacer  *ratelimit.Pacer
	comboPacer *ratelimit.Pacer

	// BaseFilters seeds the fencer search before the per-country value is
	// filled in, carrying optional name and gender narrowing
	BaseFilters types.FencerFilters

	// MaxPages bounds pages per country in the fencer sweep; 0 is unbounded
	MaxPages int

	// MaxCombinations bounds the ranking sweep; 0 is unbounded
	MaxCombinations int
}

// NewEnumerator builds an enumerator over the given page source.
func NewEnumerator(source PageSource, filters config.FilterConfig, pagePacer, comboPacer *ratelimit.Pacer) *Enumerator {
	return &Enumerator{
		source:     source,
		filters:    filters,
		pagePacer:  pagePacer,
		comboPacer: comboPacer,
	}
}

// SweepFencers pages through the fencer search for each country in order.
// Pagination for a country ends at the first empty page or at the page
// ceiling. Cancellation between pages returns whatever has been accumulated:
// partial results are valid results.
func (e *Enumerator) SweepFencers(ctx context.Context, countries []string) []types.FencerProfile {
	var fencers []types.FencerProfile

	for _, country := range countries {
		log.Info().Str("country", country).Msg("sweeping fencers")

		for page := 1; e.MaxPages == 0 || page <= e.MaxPages; page++ {
			if err := e.pagePacer.Wait(ctx); err != nil {
				log.Info().Int("fencers", len(fencers)).Msg("fencer sweep interrupted")
				return fencers
			}

			filters := e.BaseFilters
			filters.Country = country
			profiles := e.source.FetchFencerPage(ctx, page, filters)
			if len(profiles) == 0 {
				break
			}
			fencers = append(fencers, profiles...)
		}

		log.Info().Str("country", country).Int("total", len(fencers)).Msg("country completed")
	}
	return fencers
}

// SweepRankings walks the gender × weapon × age × season cross-product in
// deterministic order. The optional combination ceiling halts the sweep
// across all nesting levels as soon as it is reached. Cancellation between
// combinations returns the partial accumulation.
func (e *Enumerator) SweepRankings(ctx context.Context) []types.RankingEntry {
	var rankings []types.RankingEntry
	completed := 0

sweep:
	for _, gender := range e.filters.Genders {
		for _, weapon := range e.filters.Weapons {
			for _, age := range e.filters.AgeCategories {
				for _, season := range e.filters.Seasons {
					if err := e.comboPacer.Wait(ctx); err != nil {
						log.Info().Int("rankings", len(rankings)).Msg("ranking sweep interrupted")
						return rankings
					}

					combo := types.Combination{
						Gender:      gender,
						Weapon:      weapon,
						AgeCategory: age,
						Season:      season,
					}
					rankings = append(rankings, e.source.FetchRankingsPage(ctx, combo)...)

					completed++
					if e.MaxCombinations > 0 && completed >= e.MaxCombinations {
						log.Info().Int("combinations", completed).Msg("combination ceiling reached")
						break sweep
					}
				}
			}
		}
	}
	return rankings
}
