// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
)

const (
	sqliteFencerSchema = `CREATE TABLE IF NOT EXISTS eurofencing_fencers (
		licence TEXT PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		club TEXT,
		nation TEXT,
		birth_year INTEGER,
		gender TEXT,
		handedness TEXT,
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	sqliteRankingSchema = `CREATE TABLE IF NOT EXISTS eurofencing_rankings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ranking INTEGER,
		competition TEXT,
		venue TEXT,
		nation TEXT,
		category TEXT,
		discipline TEXT,
		coefficient REAL,
		season TEXT,
		weapon TEXT,
		age_group TEXT,
		gender TEXT,
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	sqliteInsertFencer = `INSERT OR IGNORE INTO eurofencing_fencers
		(licence, first_name, last_name, club, nation, birth_year, gender, handedness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	sqliteInsertRanking = `INSERT INTO eurofencing_rankings
		(ranking, competition, venue, nation, category, discipline, coefficient, season, weapon, age_group, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

func openSQLite(cfg config.DatabaseConfig) (Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite locks the whole file on write
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	store := &sqlStore{
		db:            db,
		driver:        "sqlite",
		schema:        []string{sqliteFencerSchema, sqliteRankingSchema},
		insertFencer:  sqliteInsertFencer,
		insertRanking: sqliteInsertRanking,
	}
	if err := store.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
