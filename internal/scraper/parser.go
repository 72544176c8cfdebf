// internal/scraper/parser.go
package scraper

import (
	"strconv"
	"strings"

	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// Minimum cell counts below which a row is rejected outright rather than
// padded. The site does not contractually guarantee the row format.
const (
	minFencerCells  = 7
	minRankingCells = 6
)

// ParseFencerRow converts one result row of the fencer search into a
// profile. The gender filter in effect is passed in because the table does
// not carry gender itself. Numeric cells parse permissively: a malformed
// birth year becomes 0 instead of discarding the row.
func ParseFencerRow(cells []string, genderFilter string) (types.FencerProfile, error) {
	if len(cells) < minFencerCells {
		return types.FencerProfile{}, &RowParseError{
			Kind:   "fencer",
			Cells:  len(cells),
			Reason: "fewer than " + strconv.Itoa(minFencerCells) + " cells",
		}
	}

	return types.FencerProfile{
		Licence:    strings.TrimSpace(cells[0]),
		LastName:   strings.TrimSpace(cells[1]),
		FirstName:  strings.TrimSpace(cells[2]),
		Club:       strings.TrimSpace(cells[3]),
		Nation:     strings.TrimSpace(cells[4]),
		BirthYear:  parseIntCell(cells[5]),
		Gender:     types.GenderCode(genderFilter),
		Handedness: strings.TrimSpace(cells[6]),
	}, nil
}

// ParseRankingRow converts one ranking-table row into an entry, stamping it
// with the filter combination that produced the search. The coefficient cell
// is optional; rows carrying only the six mandatory cells get a 0
// coefficient.
func ParseRankingRow(cells []string, combo types.Combination) (types.RankingEntry, error) {
	if len(cells) < minRankingCells {
		return types.RankingEntry{}, &RowParseError{
			Kind:   "ranking",
			Cells:  len(cells),
			Reason: "fewer than " + strconv.Itoa(minRankingCells) + " cells",
		}
	}

	entry := types.RankingEntry{
		Rank:        parseIntCell(cells[0]),
		Competition: strings.TrimSpace(cells[1]),
		Venue:       strings.TrimSpace(cells[2]),
		Nation:      strings.TrimSpace(cells[3]),
		Category:    strings.TrimSpace(cells[4]),
		Discipline:  strings.TrimSpace(cells[5]),
		Season:      combo.Season,
		Weapon:      combo.Weapon,
		AgeGroup:    combo.AgeCategory,
		Gender:      combo.Gender,
	}
	if len(cells) > minRankingCells {
		entry.Coefficient = parseFloatCell(cells[6])
	}
	return entry, nil
}

// parseIntCell parses a numeric cell permissively: malformed text yields the
// sentinel 0 rather than failing the row. Downstream consumers cannot tell a
// genuine 0 from an unparsed cell.
func parseIntCell(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseFloatCell is the float counterpart of parseIntCell.
func parseFloatCell(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
