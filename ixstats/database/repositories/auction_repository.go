package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/uptrace/bun"
)

type AuctionRepository interface {
	DB() *bun.DB
	GetByListingCode(ctx context.Context, code string) (*models.AuctionListing, error)
	GetActive(ctx context.Context) ([]*models.AuctionListing, error)
	GetExpired(ctx context.Context, now time.Time) ([]*models.AuctionListing, error)
	GetListingBids(ctx context.Context, listingID int64) ([]*models.AuctionBid, error)
	GetUserBids(ctx context.Context, bidderID string) ([]*models.AuctionBid, error)
}

type auctionRepository struct {
	db *bun.DB
}

func NewAuctionRepository(db *bun.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

func (r *auctionRepository) DB() *bun.DB {
	return r.db
}

func (r *auctionRepository) GetByListingCode(ctx context.Context, code string) (*models.AuctionListing, error) {
	listing := new(models.AuctionListing)
	err := r.db.NewSelect().
		Model(listing).
		Where("listing_code = ?", code).
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get listing by code: %w", err)
	}
	return listing, nil
}

func (r *auctionRepository) GetActive(ctx context.Context) ([]*models.AuctionListing, error) {
	var listings []*models.AuctionListing

	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusActive).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}

	return listings, nil
}

func (r *auctionRepository) GetExpired(ctx context.Context, now time.Time) ([]*models.AuctionListing, error) {
	var listings []*models.AuctionListing

	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusActive).
		Where("end_time <= ?", now).
		Order("end_time ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get expired listings: %w", err)
	}

	return listings, nil
}

func (r *auctionRepository) GetListingBids(ctx context.Context, listingID int64) ([]*models.AuctionBid, error) {
	var bids []*models.AuctionBid

	err := r.db.NewSelect().
		Model(&bids).
		Where("listing_id = ?", listingID).
		Order("timestamp DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get listing bids: %w", err)
	}

	return bids, nil
}

func (r *auctionRepository) GetUserBids(ctx context.Context, bidderID string) ([]*models.AuctionBid, error) {
	var bids []*models.AuctionBid

	err := r.db.NewSelect().
		Model(&bids).
		Where("bidder_id = ?", bidderID).
		Order("timestamp DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get user bids: %w", err)
	}

	return bids, nil
}
