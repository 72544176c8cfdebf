// internal/storage/mysql.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
)

const (
	mysqlFencerSchema = `CREATE TABLE IF NOT EXISTS eurofencing_fencers (
		licence VARCHAR(32) PRIMARY KEY,
		first_name VARCHAR(128),
		last_name VARCHAR(128),
		club VARCHAR(255),
		nation VARCHAR(8),
		birth_year INT,
		gender VARCHAR(4),
		handedness VARCHAR(8),
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

	mysqlRankingSchema = `CREATE TABLE IF NOT EXISTS eurofencing_rankings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		ranking INT,
		competition VARCHAR(255),
		venue VARCHAR(255),
		nation VARCHAR(8),
		category VARCHAR(64),
		discipline VARCHAR(64),
		coefficient DOUBLE,
		season VARCHAR(16),
		weapon VARCHAR(16),
		age_group VARCHAR(16),
		gender VARCHAR(16),
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

	mysqlInsertFencer = `INSERT IGNORE INTO eurofencing_fencers
		(licence, first_name, last_name, club, nation, birth_year, gender, handedness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	mysqlInsertRanking = `INSERT INTO eurofencing_rankings
		(ranking, competition, venue, nation, category, discipline, coefficient, season, weapon, age_group, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

func openMySQL(cfg config.DatabaseConfig) (Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	store := &sqlStore{
		db:            db,
		driver:        "mysql",
		schema:        []string{mysqlFencerSchema, mysqlRankingSchema},
		insertFencer:  mysqlInsertFencer,
		insertRanking: mysqlInsertRanking,
	}
	if err := store.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
