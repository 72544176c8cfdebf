// internal/output/records.go

// Package output serializes scraped batches to timestamped files. It never
// parses anything; it only receives already-built in-memory record
// collections from the engine.
package output

import (
	"strconv"

	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// Column headers shared by the delimited and spreadsheet writers. Order
// matches the struct field order so files line up with the storage schemas.
var (
	fencerHeader = []string{
		"licence", "first_name", "last_name", "club", "nation",
		"birth_year", "gender", "handedness",
	}
	rankingHeader = []string{
		"rank", "competition", "venue", "nation", "category", "discipline",
		"coefficient", "season", "weapon", "age_group", "gender",
	}
)

func fencerRows(fencers []types.FencerProfile) [][]string {
	rows := make([][]string, 0, len(fencers))
	for _, f := range fencers {
		rows = append(rows, []string{
			f.Licence, f.FirstName, f.LastName, f.Club, f.Nation,
			strconv.Itoa(f.BirthYear), f.Gender, f.Handedness,
		})
	}
	return rows
}

func rankingRows(entries []types.RankingEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Rank), e.Competition, e.Venue, e.Nation,
			e.Category, e.Discipline,
			strconv.FormatFloat(e.Coefficient, 'f', 2, 64),
			e.Season, e.Weapon, e.AgeGroup, e.Gender,
		})
	}
	return rows
}
