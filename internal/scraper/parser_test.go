// internal/scraper/parser_test.go
package scraper

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

func TestParseFencerRow(t *testing.T) {
	cells := []string{" 12345678 ", "Doe", "Jane", "Club X", "USA", "1998", "Left"}

	got, err := ParseFencerRow(cells, "women")
	if err != nil {
		t.Fatalf("ParseFencerRow failed: %v", err)
	}

	want := types.FencerProfile{
		Licence:    "12345678",
		LastName:   "Doe",
		FirstName:  "Jane",
		Club:       "Club X",
		Nation:     "USA",
		BirthYear:  1998,
		Gender:     "F",
		Handedness: "Left",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFencerRow = %+v, want %+v", got, want)
	}
}

func TestParseFencerRowTooFewCells(t *testing.T) {
	// Six cells is below the seven-cell minimum: the row is rejected, not
	// padded.
	cells := []string{"12345678", "Doe", "Jane", "Club X", "USA", "1998"}

	_, err := ParseFencerRow(cells, "women")
	if err == nil {
		t.Fatal("expected parse error for short row")
	}

	var parseErr *RowParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected RowParseError, got %T", err)
	}
	if parseErr.Kind != "fencer" || parseErr.Cells != 6 {
		t.Errorf("unexpected error detail: %+v", parseErr)
	}
}

func TestParseFencerRowMalformedBirthYear(t *testing.T) {
	cells := []string{"1", "Doe", "Jane", "Club", "FRA", "n/a", "Right"}

	got, err := ParseFencerRow(cells, "men")
	if err != nil {
		t.Fatalf("malformed numeric cell must not discard the row: %v", err)
	}
	if got.BirthYear != 0 {
		t.Errorf("expected sentinel 0 birth year, got %d", got.BirthYear)
	}
	if got.Gender != "M" {
		t.Errorf("expected gender M, got %q", got.Gender)
	}
}

func TestParseRankingRow(t *testing.T) {
	combo := types.Combination{Gender: "men", Weapon: "foil", AgeCategory: "cadet", Season: "2024"}
	cells := []string{"1", "Grand Prix Paris", "Paris", "FRA", "Senior", "Foil", "7.50"}

	got, err := ParseRankingRow(cells, combo)
	if err != nil {
		t.Fatalf("ParseRankingRow failed: %v", err)
	}

	want := types.RankingEntry{
		Rank:        1,
		Competition: "Grand Prix Paris",
		Venue:       "Paris",
		Nation:      "FRA",
		Category:    "Senior",
		Discipline:  "Foil",
		Coefficient: 7.50,
		Season:      "2024",
		Weapon:      "foil",
		AgeGroup:    "cadet",
		Gender:      "men",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseRankingRow = %+v, want %+v", got, want)
	}
}

func TestParseRankingRowWithoutCoefficient(t *testing.T) {
	combo := types.Combination{Gender: "women", Weapon: "epee", AgeCategory: "u23", Season: "2023"}
	cells := []string{"3", "World Cup", "Tallinn", "EST", "U23", "Epee"}

	got, err := ParseRankingRow(cells, combo)
	if err != nil {
		t.Fatalf("six-cell ranking row must parse: %v", err)
	}
	if got.Coefficient != 0 {
		t.Errorf("expected 0 coefficient, got %f", got.Coefficient)
	}
}

func TestParseRankingRowTooFewCells(t *testing.T) {
	combo := types.Combination{Gender: "men", Weapon: "sabre", AgeCategory: "u14", Season: "2022"}

	_, err := ParseRankingRow([]string{"1", "Cup", "Rome", "ITA", "U14"}, combo)

	var parseErr *RowParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected RowParseError, got %v", err)
	}
	if parseErr.Kind != "ranking" {
		t.Errorf("unexpected kind %q", parseErr.Kind)
	}
}

func TestParseRankingRowMalformedNumerics(t *testing.T) {
	combo := types.Combination{Gender: "men", Weapon: "foil", AgeCategory: "cadet", Season: "2024"}
	cells := []string{"-", "Open", "Bonn", "GER", "Cadet", "Foil", "abc"}

	got, err := ParseRankingRow(cells, combo)
	if err != nil {
		t.Fatalf("malformed numerics must not discard the row: %v", err)
	}
	if got.Rank != 0 || got.Coefficient != 0 {
		t.Errorf("expected sentinel zeros, got rank=%d coefficient=%f", got.Rank, got.Coefficient)
	}
}

func TestParserIsIdempotent(t *testing.T) {
	combo := types.Combination{Gender: "men", Weapon: "foil", AgeCategory: "cadet", Season: "2024"}
	cells := []string{"1", "Grand Prix Paris", "Paris", "FRA", "Senior", "Foil", "7.50"}

	first, err := ParseRankingRow(cells, combo)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseRankingRow(cells, combo)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated parses of the same row must yield identical records")
	}
}
