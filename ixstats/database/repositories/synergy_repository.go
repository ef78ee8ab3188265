package repositories

import (
	"context"
	"fmt"

	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/uptrace/bun"
)

type SynergyRepository interface {
	GetAll(ctx context.Context) ([]*models.ComponentSynergy, error)
	GetForComponent(ctx context.Context, componentType string) ([]*models.ComponentSynergy, error)
	BulkCreate(ctx context.Context, synergies []*models.ComponentSynergy) (int, error)
}

type synergyRepository struct {
	db *bun.DB
}

func NewSynergyRepository(db *bun.DB) SynergyRepository {
	return &synergyRepository{db: db}
}

func (r *synergyRepository) GetAll(ctx context.Context) ([]*models.ComponentSynergy, error) {
	var synergies []*models.ComponentSynergy

	err := r.db.NewSelect().
		Model(&synergies).
		Order("component_a ASC", "component_b ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get synergies: %w", err)
	}

	return synergies, nil
}

func (r *synergyRepository) GetForComponent(ctx context.Context, componentType string) ([]*models.ComponentSynergy, error) {
	var synergies []*models.ComponentSynergy

	err := r.db.NewSelect().
		Model(&synergies).
		Where("component_a = ? OR component_b = ?", componentType, componentType).
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get synergies for component: %w", err)
	}

	return synergies, nil
}

func (r *synergyRepository) BulkCreate(ctx context.Context, synergies []*models.ComponentSynergy) (int, error) {
	if len(synergies) == 0 {
		return 0, nil
	}

	res, err := r.db.NewInsert().
		Model(&synergies).
		On("CONFLICT DO NOTHING").
		Exec(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to bulk create synergies: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}
