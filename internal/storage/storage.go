// internal/storage/storage.go
package storage

import (
	"context"
	"fmt"

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

// Store persists scraped batches. Duplicate fencer licences are tolerated on
// every backend, so re-running a sweep never fails on previously saved rows.
type Store interface {
	SaveFencers(ctx context.Context, fencers []types.FencerProfile) error
	SaveRankings(ctx context.Context, entries []types.RankingEntry) error
	Close() error
}

// Open builds the store selected by the database configuration. An empty
// driver disables persistence and returns nil.
func Open(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "mysql":
		return openMySQL(cfg)
	case "postgres":
		return openPostgres(cfg)
	case "sqlite":
		return openSQLite(cfg)
	case "mongodb":
		return openMongo(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
