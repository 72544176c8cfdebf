// pkg/types/types.go

// Package types defines the record and filter types shared between the
// scraping engine, the export writers, and the storage backends.
package types

import (
	"fmt"
	"strings"
)

// FencerProfile is one registered athlete as it appears in a single row of
// the fencer search results. Gender is derived from the search filter that
// produced the row, not from the row itself, because the results table does
// not expose it. Licence is the natural key used for upsert deduplication at
// the storage boundary; the engine itself never deduplicates.
type FencerProfile struct {
	Licence    string `json:"licence" bson:"licence"`
	FirstName  string `json:"first_name" bson:"first_name"`
	LastName   string `json:"last_name" bson:"last_name"`
	Club       string `json:"club" bson:"club"`
	Nation     string `json:"nation" bson:"nation"`
	BirthYear  int    `json:"birth_year" bson:"birth_year"`
	Gender     string `json:"gender" bson:"gender"`
	Handedness string `json:"handedness" bson:"handedness"`
}

// FullName returns the display name in "First Last" order.
func (f FencerProfile) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// RankingEntry is one row of a ranking table for one filter combination.
// Season, Weapon, AgeGroup and Gender are copied from the combination that
// produced the search. Rows are not unique: repeated runs or overlapping
// filters can yield repeated (competition, venue, season, weapon, age_group,
// gender, rank) tuples, which storage is expected to tolerate.
type RankingEntry struct {
	Rank        int     `json:"rank" bson:"rank"`
	Competition string  `json:"competition" bson:"competition"`
	Venue       string  `json:"venue" bson:"venue"`
	Nation      string  `json:"nation" bson:"nation"`
	Category    string  `json:"category" bson:"category"`
	Discipline  string  `json:"discipline" bson:"discipline"`
	Coefficient float64 `json:"coefficient" bson:"coefficient"`
	Season      string  `json:"season" bson:"season"`
	Weapon      string  `json:"weapon" bson:"weapon"`
	AgeGroup    string  `json:"age_group" bson:"age_group"`
	Gender      string  `json:"gender" bson:"gender"`
}

// Combination is one tuple of ranking filter values. It exists only as loop
// state during enumeration and is never persisted.
type Combination struct {
	Gender      string
	Weapon      string
	AgeCategory string
	Season      string
	Country     string // optional, empty means all countries
}

// String renders the combination in the gender/weapon/age/season form used
// throughout the logs.
func (c Combination) String() string {
	s := fmt.Sprintf("%s/%s/%s/%s", c.Gender, c.Weapon, c.AgeCategory, c.Season)
	if c.Country != "" {
		s += "/" + c.Country
	}
	return s
}

// FencerFilters are the optional search filters for the fencer view. Zero
// values mean the filter is left untouched on the page.
type FencerFilters struct {
	Country   string
	FirstName string
	LastName  string
	Gender    string
}

// GenderCode maps a gender search filter ("men"/"women", any case) onto the
// single-letter code stored on FencerProfile. Unknown filters map to "".
func GenderCode(filter string) string {
	lower := strings.ToLower(filter)
	switch {
	case strings.Contains(lower, "women"):
		return "F"
	case strings.Contains(lower, "men"):
		return "M"
	default:
		return ""
	}
}
