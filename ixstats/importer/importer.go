// Package importer seeds the Postgres store from a legacy MongoDB export:
// the component synergy table and nation accounts. It runs once at rollout
// and is safe to re-run, inserts conflict away silently.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

type Importer struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	batchSize int
	collNames map[string]string
}

type Stats struct {
	Synergies int
	Nations   int
	Elapsed   time.Duration
}

func New(pgDB *bun.DB, mongoDB *mongo.Database) *Importer {
	return &Importer{
		pgDB:      pgDB,
		mongoDB:   mongoDB,
		batchSize: 500,
		collNames: map[string]string{
			"synergies": "componentsynergies",
			"nations":   "nations",
		},
	}
}

// SetCollectionName overrides a legacy collection name.
func (i *Importer) SetCollectionName(key, name string) {
	i.collNames[key] = name
}

// ImportAll runs the synergy and nation imports concurrently.
func (i *Importer) ImportAll(ctx context.Context) (Stats, error) {
	start := time.Now()
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := i.ImportSynergies(gctx)
		stats.Synergies = n
		return err
	})
	g.Go(func() error {
		n, err := i.ImportNations(gctx)
		stats.Nations = n
		return err
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	stats.Elapsed = time.Since(start)
	slog.Info("Legacy import completed",
		slog.String("type", "db"),
		slog.Int("synergies", stats.Synergies),
		slog.Int("nations", stats.Nations),
		slog.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

type legacySynergy struct {
	ComponentA   string  `bson:"component_a"`
	ComponentB   string  `bson:"component_b"`
	SynergyType  string  `bson:"synergy_type"`
	BonusPercent float64 `bson:"bonus_percent"`
	Description  string  `bson:"description"`
}

func (i *Importer) ImportSynergies(ctx context.Context) (int, error) {
	cursor, err := i.mongoDB.Collection(i.collNames["synergies"]).Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to query legacy synergies: %w", err)
	}
	defer cursor.Close(ctx)

	var batch []*models.ComponentSynergy
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := i.pgDB.NewInsert().
			Model(&batch).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert synergy batch: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var legacy legacySynergy
		if err := cursor.Decode(&legacy); err != nil {
			slog.Warn("Skipping undecodable legacy synergy",
				slog.String("type", "db"),
				slog.Any("error", err))
			continue
		}

		batch = append(batch, &models.ComponentSynergy{
			ComponentA:   legacy.ComponentA,
			ComponentB:   legacy.ComponentB,
			SynergyType:  legacy.SynergyType,
			BonusPercent: legacy.BonusPercent,
			Description:  legacy.Description,
			CreatedAt:    time.Now(),
		})

		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return total, fmt.Errorf("legacy synergy cursor failed: %w", err)
	}

	return total, flush()
}

type legacyNation struct {
	NationID         string   `bson:"nation_id"`
	Name             string   `bson:"name"`
	LeaderID         string   `bson:"leader_id"`
	Balance          int64    `bson:"balance"`
	GovernmentBudget float64  `bson:"government_budget"`
	GDP              float64  `bson:"gdp"`
	GDPGrowthRate    float64  `bson:"gdp_growth_rate"`
	InflationRate    float64  `bson:"inflation_rate"`
	TotalWorkforce   int64    `bson:"total_workforce"`
	UnemploymentRate float64  `bson:"unemployment_rate"`
	EconomyComps     []string `bson:"economy_components"`
	GovernmentComps  []string `bson:"government_components"`
	TaxCollection    float64  `bson:"tax_collection_efficiency"`
	TaxCompliance    float64  `bson:"tax_compliance_rate"`
}

func (i *Importer) ImportNations(ctx context.Context) (int, error) {
	cursor, err := i.mongoDB.Collection(i.collNames["nations"]).Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to query legacy nations: %w", err)
	}
	defer cursor.Close(ctx)

	var batch []*models.Nation
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := i.pgDB.NewInsert().
			Model(&batch).
			On("CONFLICT (nation_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert nation batch: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var legacy legacyNation
		if err := cursor.Decode(&legacy); err != nil {
			slog.Warn("Skipping undecodable legacy nation",
				slog.String("type", "db"),
				slog.Any("error", err))
			continue
		}

		batch = append(batch, &models.Nation{
			NationID:                legacy.NationID,
			Name:                    legacy.Name,
			LeaderID:                legacy.LeaderID,
			Balance:                 legacy.Balance,
			GovernmentBudget:        legacy.GovernmentBudget,
			GDP:                     legacy.GDP,
			GDPGrowthRate:           legacy.GDPGrowthRate,
			InflationRate:           legacy.InflationRate,
			TotalWorkforce:          legacy.TotalWorkforce,
			UnemploymentRate:        legacy.UnemploymentRate,
			EconomyComponents:       legacy.EconomyComps,
			GovernmentComponents:    legacy.GovernmentComps,
			TaxCollectionEfficiency: legacy.TaxCollection,
			TaxComplianceRate:       legacy.TaxCompliance,
			CreatedAt:               time.Now(),
			UpdatedAt:               time.Now(),
		})

		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return total, fmt.Errorf("legacy nation cursor failed: %w", err)
	}

	return total, flush()
}
