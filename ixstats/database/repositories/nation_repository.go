package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/uptrace/bun"
)

type NationRepository interface {
	GetByNationID(ctx context.Context, nationID string) (*models.Nation, error)
	GetEmbassy(ctx context.Context, nationID, hostNationID string) (*models.Embassy, error)
	UpdateComponents(ctx context.Context, nationID string, economy, government []string) error
}

type nationRepository struct {
	db *bun.DB
}

func NewNationRepository(db *bun.DB) NationRepository {
	return &nationRepository{db: db}
}

func (r *nationRepository) GetByNationID(ctx context.Context, nationID string) (*models.Nation, error) {
	nation := new(models.Nation)
	err := r.db.NewSelect().
		Model(nation).
		Where("nation_id = ?", nationID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("nation %s not found", nationID)
		}
		return nil, fmt.Errorf("failed to get nation: %w", err)
	}
	return nation, nil
}

func (r *nationRepository) GetEmbassy(ctx context.Context, nationID, hostNationID string) (*models.Embassy, error) {
	embassy := new(models.Embassy)
	err := r.db.NewSelect().
		Model(embassy).
		Where("nation_id = ? AND host_nation_id = ?", nationID, hostNationID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no embassy between %s and %s", nationID, hostNationID)
		}
		return nil, fmt.Errorf("failed to get embassy: %w", err)
	}
	return embassy, nil
}

func (r *nationRepository) UpdateComponents(ctx context.Context, nationID string, economy, government []string) error {
	_, err := r.db.NewUpdate().
		Model((*models.Nation)(nil)).
		Set("economy_components = ?", economy).
		Set("government_components = ?", government).
		Set("updated_at = ?", time.Now()).
		Where("nation_id = ?", nationID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update components: %w", err)
	}
	return nil
}
