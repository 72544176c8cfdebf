// internal/scraper/countries_test.go
package scraper

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// countrySelectHTML builds a fencer search view with a small filter select
// and one select carrying n country options after the blank placeholder.
func countrySelectHTML(n int) string {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	b.WriteString(`<select name="gender"><option value=""></option><option value="men">Men</option><option value="women">Women</option></select>`)
	b.WriteString(`<select name="country"><option value=""></option>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<option value="C%02d">Country %d</option>`, i, i)
	}
	b.WriteString(`</select></body></html>`)
	return b.String()
}

func TestExtractCountryCodes(t *testing.T) {
	html := countrySelectHTML(60)

	countries := extractCountryCodes(html)

	if len(countries) != 60 {
		t.Fatalf("expected 60 countries, got %d", len(countries))
	}
	if countries[0] != "C00" {
		t.Errorf("unexpected first country: %q", countries[0])
	}
	for _, code := range countries {
		if len(code) != 3 {
			t.Errorf("non 3-letter code extracted: %q", code)
		}
	}
}

func TestExtractCountryCodesSkipsBlankFirstOption(t *testing.T) {
	countries := extractCountryCodes(countrySelectHTML(55))
	for _, code := range countries {
		if code == "" {
			t.Error("blank placeholder option extracted")
		}
	}
}

func TestExtractCountryCodesNoLargeSelect(t *testing.T) {
	// 40 options is under the 50-option threshold: no select qualifies as
	// the country dropdown.
	countries := extractCountryCodes(countrySelectHTML(40))
	if len(countries) != 0 {
		t.Errorf("expected no countries, got %d", len(countries))
	}
}

func TestDiscoverCountriesDegradesToEmpty(t *testing.T) {
	ctrl := newFakeController(countrySelectHTML(10))
	f := newTestFetcher(ctrl)

	countries := f.DiscoverCountries(context.Background())

	if len(countries) != 0 {
		t.Errorf("expected empty discovery, got %v", countries)
	}
	assertAction(t, ctrl, "consent")
}

func TestDiscoverCountries(t *testing.T) {
	ctrl := newFakeController(countrySelectHTML(70))
	f := newTestFetcher(ctrl)

	countries := f.DiscoverCountries(context.Background())

	if len(countries) != 70 {
		t.Errorf("expected 70 countries, got %d", len(countries))
	}
}
