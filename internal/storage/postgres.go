// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
)

const (
	postgresFencerSchema = `CREATE TABLE IF NOT EXISTS eurofencing_fencers (
		licence VARCHAR(32) PRIMARY KEY,
		first_name VARCHAR(128),
		last_name VARCHAR(128),
		club VARCHAR(255),
		nation VARCHAR(8),
		birth_year INTEGER,
		gender VARCHAR(4),
		handedness VARCHAR(8),
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	postgresRankingSchema = `CREATE TABLE IF NOT EXISTS eurofencing_rankings (
		id SERIAL PRIMARY KEY,
		ranking INTEGER,
		competition VARCHAR(255),
		venue VARCHAR(255),
		nation VARCHAR(8),
		category VARCHAR(64),
		discipline VARCHAR(64),
		coefficient DOUBLE PRECISION,
		season VARCHAR(16),
		weapon VARCHAR(16),
		age_group VARCHAR(16),
		gender VARCHAR(16),
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	postgresInsertFencer = `INSERT INTO eurofencing_fencers
		(licence, first_name, last_name, club, nation, birth_year, gender, handedness)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (licence) DO NOTHING`

	postgresInsertRanking = `INSERT INTO eurofencing_rankings
		(ranking, competition, venue, nation, category, discipline, coefficient, season, weapon, age_group, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
)

func openPostgres(cfg config.DatabaseConfig) (Store, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	store := &sqlStore{
		db:            db,
		driver:        "postgres",
		schema:        []string{postgresFencerSchema, postgresRankingSchema},
		insertFencer:  postgresInsertFencer,
		insertRanking: postgresInsertRanking,
	}
	if err := store.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
