// internal/storage/sql.go
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kennymcmillan/eurofencing-scraper/internal/monitoring"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// sqlStore is the shared implementation behind the MySQL, PostgreSQL and
// SQLite backends. The per-driver files supply the schema and the insert
// statements, which differ only in conflict handling and placeholder style.
type sqlStore struct {
	db            *sql.DB
	driver        string
	schema        []string
	insertFencer  string
	insertRanking string
}

func (s *sqlStore) init(ctx context.Context) error {
	for _, stmt := range s.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create %s schema: %w", s.driver, err)
		}
	}
	return nil
}

// SaveFencers inserts the batch in one transaction. Rows whose licence is
// already stored are skipped by the driver-specific conflict clause.
func (s *sqlStore) SaveFencers(ctx context.Context, fencers []types.FencerProfile) error {
	if len(fencers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertFencer)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare fencer insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range fencers {
		if _, err := stmt.ExecContext(ctx, f.Licence, f.FirstName, f.LastName, f.Club, f.Nation, f.BirthYear, f.Gender, f.Handedness); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert fencer %s: %w", f.Licence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fencers: %w", err)
	}

	monitoring.RecordsStored.WithLabelValues("fencers").Add(float64(len(fencers)))
	log.Info().Str("driver", s.driver).Int("count", len(fencers)).Msg("stored fencers")
	return nil
}

// SaveRankings inserts the batch in one transaction.
func (s *sqlStore) SaveRankings(ctx context.Context, entries []types.RankingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertRanking)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare ranking insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Rank, e.Competition, e.Venue, e.Nation, e.Category, e.Discipline, e.Coefficient, e.Season, e.Weapon, e.AgeGroup, e.Gender); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert ranking entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rankings: %w", err)
	}

	monitoring.RecordsStored.WithLabelValues("rankings").Add(float64(len(entries)))
	log.Info().Str("driver", s.driver).Int("count", len(entries)).Msg("stored rankings")
	return nil
}

// Close releases the connection pool.
func (s *sqlStore) Close() error {
	return s.db.Close()
}
