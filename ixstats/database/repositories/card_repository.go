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

type CardRepository interface {
	GetByID(ctx context.Context, id int64) (*models.CardInstance, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*models.CardInstance, error)
}

type cardRepository struct {
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.CardInstance, error) {
	card := new(models.CardInstance)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("card instance %d not found", id)
		}
		return nil, fmt.Errorf("failed to get card instance: %w", err)
	}
	return card, nil
}

func (r *cardRepository) GetByOwner(ctx context.Context, ownerID string) ([]*models.CardInstance, error) {
	var cards []*models.CardInstance

	err := r.db.NewSelect().
		Model(&cards).
		Where("owner_id = ?", ownerID).
		Order("obtained_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get cards for owner: %w", err)
	}

	return cards, nil
}

// TransferCard moves ownership of a card instance inside an existing
// transaction. Used by the market when a sale settles.
func TransferCard(ctx context.Context, tx bun.Tx, cardInstanceID int64, newOwnerID string, listed bool) error {
	res, err := tx.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("owner_id = ?", newOwnerID).
		Set("listed = ?", listed).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", cardInstanceID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to transfer card: %w", err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("card instance %d not found during transfer", cardInstanceID)
	}
	return nil
}
