// internal/storage/mongodb.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kennymcmillan/eurofencing-scraper/internal/config"
	"github.com/kennymcmillan/eurofencing-scraper/internal/monitoring"
	"github.com/kennymcmillan/eurofencing-scraper/pkg/types"
)

const (
	fencersCollection  = "eurofencing_fencers"
	rankingsCollection = "eurofencing_rankings"
)

type mongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

func openMongo(cfg config.DatabaseConfig) (Store, error) {
	uri := cfg.URI
	if uri == "" {
		uri = fmt.Sprintf("mongodb://%s:%d", cfg.Host, cfg.Port)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &mongoStore{
		client:   client,
		database: client.Database(cfg.Name),
	}, nil
}

// SaveFencers upserts each profile keyed by licence, so re-scraped fencers
// replace their earlier document instead of duplicating it.
func (s *mongoStore) SaveFencers(ctx context.Context, fencers []types.FencerProfile) error {
	if len(fencers) == 0 {
		return nil
	}

	coll := s.database.Collection(fencersCollection)
	opts := options.Replace().SetUpsert(true)
	for _, f := range fencers {
		filter := bson.M{"licence": f.Licence}
		if _, err := coll.ReplaceOne(ctx, filter, f, opts); err != nil {
			return fmt.Errorf("failed to upsert fencer %s: %w", f.Licence, err)
		}
	}

	monitoring.RecordsStored.WithLabelValues("fencers").Add(float64(len(fencers)))
	log.Info().Str("driver", "mongodb").Int("count", len(fencers)).Msg("stored fencers")
	return nil
}

// SaveRankings inserts the batch unordered, so one bad document does not
// abort the rest.
func (s *mongoStore) SaveRankings(ctx context.Context, entries []types.RankingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}

	coll := s.database.Collection(rankingsCollection)
	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to insert rankings: %w", err)
	}

	monitoring.RecordsStored.WithLabelValues("rankings").Add(float64(len(entries)))
	log.Info().Str("driver", "mongodb").Int("count", len(entries)).Msg("stored rankings")
	return nil
}

func (s *mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
