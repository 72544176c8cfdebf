// internal/scraper/enumerator_test.go
package scraper

import (
	"context"
	"testing"

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
	"github.com/kennymcmillan/eurofencing-scraper/internal/ratelimit"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// fakeSource scripts page and combination responses for sweep tests.
type fakeSource struct {
	// pagesPerCountry yields this many non-empty pages per country before
	// the empty-page exhaustion signal
	pagesPerCountry int

	fencerCalls  []int
	rankingCalls []types.Combination

	cancelAfter int                // cancel the context after this many ranking calls (0 = never)
	cancel      context.CancelFunc
}

func (f *fakeSource) FetchFencerPage(_ context.Context, page int, _ types.FencerFilters) []types.FencerProfile {
	f.fencerCalls = append(f.fencerCalls, page)
	if page > f.pagesPerCountry {
		return nil
	}
	return []types.FencerProfile{{Licence: "L1"}, {Licence: "L2"}}
}

func (f *fakeSource) FetchRankingsPage(_ context.Context, combo types.Combination) []types.RankingEntry {
	f.rankingCalls = append(f.rankingCalls, combo)
	if f.cancelAfter > 0 && len(f.rankingCalls) == f.cancelAfter {
		f.cancel()
	}
	return []types.RankingEntry{{Rank: 1, Competition: "Cup"}}
}

func testFilters() config.FilterConfig {
	return config.FilterConfig{
		Genders:       []string{"men", "women"},
		Weapons:       []string{"foil", "epee"},
		AgeCategories: []string{"cadet"},
		Seasons:       []string{"2024", "2023"},
	}
}

func newTestEnumerator(source PageSource) *Enumerator {
	return NewEnumerator(source, testFilters(), ratelimit.NewPacer(0), ratelimit.NewPacer(0))
}

func TestSweepFencersStopsOnEmptyPage(t *testing.T) {
	source := &fakeSource{pagesPerCountry: 3}
	e := newTestEnumerator(source)

	fencers := e.SweepFencers(context.Background(), []string{"FRA"})

	// Three full pages of two fencers, then the empty fourth page.
	if len(fencers) != 6 {
		t.Errorf("expected 6 fencers, got %d", len(fencers))
	}
	wantCalls := []int{1, 2, 3, 4}
	if len(source.fencerCalls) != len(wantCalls) {
		t.Fatalf("expected %d page fetches, got %v", len(wantCalls), source.fencerCalls)
	}
	for i, page := range wantCalls {
		if source.fencerCalls[i] != page {
			t.Errorf("call %d fetched page %d, want %d", i, source.fencerCalls[i], page)
		}
	}
}

func TestSweepFencersHonorsPageCeiling(t *testing.T) {
	source := &fakeSource{pagesPerCountry: 100}
	e := newTestEnumerator(source)
	e.MaxPages = 2

	fencers := e.SweepFencers(context.Background(), []string{"FRA", "GER"})

	// Two pages per country, never a third.
	if len(source.fencerCalls) != 4 {
		t.Errorf("expected 4 page fetches, got %v", source.fencerCalls)
	}
	for _, page := range source.fencerCalls {
		if page > 2 {
			t.Errorf("fetched page %d beyond ceiling", page)
		}
	}
	if len(fencers) != 8 {
		t.Errorf("expected 8 fencers, got %d", len(fencers))
	}
}

func TestSweepRankingsFullCrossProduct(t *testing.T) {
	source := &fakeSource{}
	e := newTestEnumerator(source)

	rankings := e.SweepRankings(context.Background())

	want := testFilters().Combinations()
	if len(source.rankingCalls) != want {
		t.Errorf("expected %d combinations, got %d", want, len(source.rankingCalls))
	}
	if len(rankings) != want {
		t.Errorf("expected %d entries, got %d", want, len(rankings))
	}

	// Deterministic order: seasons vary fastest, genders slowest.
	first := source.rankingCalls[0]
	if first.Gender != "men" || first.Weapon != "foil" || first.Season != "2024" {
		t.Errorf("unexpected first combination: %+v", first)
	}
	second := source.rankingCalls[1]
	if second.Season != "2023" {
		t.Errorf("expected season to vary fastest, second combination: %+v", second)
	}
}

func TestSweepRankingsCombinationCeiling(t *testing.T) {
	// The ceiling must hold exactly regardless of where it falls in the
	// nesting: 3 cuts mid-season-loop, 4 cuts at a weapon boundary.
	for _, ceiling := range []int{1, 3, 4, 7} {
		source := &fakeSource{}
		e := newTestEnumerator(source)
		e.MaxCombinations = ceiling

		e.SweepRankings(context.Background())

		if len(source.rankingCalls) != ceiling {
			t.Errorf("ceiling %d: fetched %d combinations", ceiling, len(source.rankingCalls))
		}
	}
}

func TestSweepRankingsReturnsPartialOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &fakeSource{cancelAfter: 2, cancel: cancel}
	e := newTestEnumerator(source)

	rankings := e.SweepRankings(ctx)

	// Interruption is observed between combinations: everything fetched
	// before the cancel is returned, nothing after.
	if len(rankings) != 2 {
		t.Errorf("expected 2 partial entries, got %d", len(rankings))
	}
	if len(source.rankingCalls) != 2 {
		t.Errorf("expected no fetches after cancellation, got %d", len(source.rankingCalls))
	}
}

func TestSweepFencersReturnsPartialOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{pagesPerCountry: 5}
	e := newTestEnumerator(source)

	fencers := e.SweepFencers(ctx, []string{"FRA"})

	if len(source.fencerCalls) != 0 {
		t.Errorf("expected no fetches on a cancelled context, got %d", len(source.fencerCalls))
	}
	if len(fencers) != 0 {
		t.Errorf("expected empty result, got %d", len(fencers))
	}
}
