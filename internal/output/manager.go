// internal/output/manager.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
	"github.com/kennymcmillan/eurofencing-scraper/internal/monitoring"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// filePrefix starts every export file name.
const filePrefix = "eurofencing"

// timestampLayout yields names sortable by run time.
const timestampLayout = "20060102_150405"

// Manager fans one scraped batch out to every configured file format. Empty
// batches produce no file.
type Manager struct {
	dir      string
	formats  []string
	encoding string

	// now is injectable for deterministic file names in tests
	now func() time.Time
}

// NewManager builds an export manager from the export configuration.
func NewManager(cfg config.ExportConfig) *Manager {
	return &Manager{
		dir:      cfg.OutputDirectory,
		formats:  cfg.Formats,
		encoding: cfg.Encoding,
		now:      time.Now,
	}
}

// Export writes both batches in every configured format. Each file failure
// is reported, but a failing format never discards the in-memory batch or
// prevents the remaining formats from being written.
func (m *Manager) Export(fencers []types.FencerProfile, rankings []types.RankingEntry) error {
	if len(fencers) == 0 && len(rankings) == 0 {
		log.Info().Msg("nothing to export")
		return nil
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := m.now().Format(timestampLayout)
	var errs []string

	for _, format := range m.formats {
		if len(fencers) > 0 {
			if err := m.writeBatch(format, "fencers", timestamp, fencerHeader, fencerRows(fencers), fencers); err != nil {
				errs = append(errs, err.Error())
			} else {
				monitoring.RecordsExported.WithLabelValues(format).Add(float64(len(fencers)))
			}
		}
		if len(rankings) > 0 {
			if err := m.writeBatch(format, "rankings", timestamp, rankingHeader, rankingRows(rankings), rankings); err != nil {
				errs = append(errs, err.Error())
			} else {
				monitoring.RecordsExported.WithLabelValues(format).Add(float64(len(rankings)))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("export finished with errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// writeBatch writes one record collection in one format. records carries the
// typed slice for the JSON encoder; header/rows the tabular projection for
// CSV and Excel.
func (m *Manager) writeBatch(format, kind, timestamp string, header []string, rows [][]string, records interface{}) error {
	filename := filepath.Join(m.dir, fmt.Sprintf("%s_%s_%s.%s", filePrefix, kind, timestamp, extension(format)))

	var err error
	switch strings.ToLower(format) {
	case "csv":
		err = m.writeCSV(filename, header, rows)
	case "json":
		err = m.writeJSON(filename, records)
	case "excel":
		err = m.writeExcel(filename, kind, header, rows)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}

	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("export failed")
		return err
	}
	log.Info().Str("file", filename).Int("records", len(rows)).Msg("exported")
	return nil
}

func (m *Manager) writeCSV(filename string, header []string, rows [][]string) error {
	w, err := NewCSVWriter(filename, m.encoding)
	if err != nil {
		return err
	}
	if err := w.Write(header, rows); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (m *Manager) writeJSON(filename string, records interface{}) error {
	w, err := NewJSONWriter(filename)
	if err != nil {
		return err
	}
	if err := w.Write(records); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (m *Manager) writeExcel(filename, kind string, header []string, rows [][]string) error {
	w := NewExcelWriter(filename)
	if err := w.Write(sheetName(kind), header, rows); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func sheetName(kind string) string {
	if kind == "" {
		return "Data"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

func extension(format string) string {
	if strings.EqualFold(format, "excel") {
		return "xlsx"
	}
	return strings.ToLower(format)
}
