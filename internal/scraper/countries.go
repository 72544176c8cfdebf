// internal/scraper/countries.go
package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// countryOptionThreshold distinguishes the country selector from the other
// selects on the fencer search view: it is the only one with more than 50
// options.
const countryOptionThreshold = 50

// DiscoverCountries loads the fencer search view and extracts every 3-letter
// country code from the country dropdown. An empty result means discovery
// failed; callers fall back to the configured priority countries rather than
// aborting.
func (f *PageFetcher) DiscoverCountries(ctx context.Context) []string {
	if err := f.ctrl.Navigate(ctx, f.baseURL+fencersPath); err != nil {
		log.Error().Err(err).Msg("country discovery: navigation failed")
		return nil
	}

	f.ctrl.DismissConsent(ctx)

	if err := f.ctrl.WaitVisible(ctx, "select"); err != nil {
		log.Error().Err(err).Msg("country discovery: no select controls appeared")
		return nil
	}

	html, err := f.ctrl.OuterHTML(ctx)
	if err != nil {
		log.Error().Err(err).Msg("country discovery: failed to read page")
		return nil
	}

	countries := extractCountryCodes(html)
	if len(countries) == 0 {
		log.Error().Msg("country discovery: no country selector found")
		return nil
	}

	log.Info().Int("countries", len(countries)).Msg("countries discovered")
	return countries
}

// extractCountryCodes finds the select with more option elements than the
// threshold and collects its 3-letter option values, skipping the first
// (blank) option.
func extractCountryCodes(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var countries []string
	doc.Find("select").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		options := sel.Find("option")
		if options.Length() <= countryOptionThreshold {
			return true
		}
		options.Each(func(i int, opt *goquery.Selection) {
			if i == 0 {
				return // first option is the blank placeholder
			}
			value, _ := opt.Attr("value")
			if len(value) == 3 {
				countries = append(countries, value)
			}
		})
		return false
	})
	return countries
}
