package market

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/ixstats/engine/ixstats/database/repositories"
	"github.com/uptrace/bun"
)

// MinBid is the smallest acceptable bid for a listing.
func MinBid(listing *models.AuctionListing) int64 {
	return listing.CurrentBid + MinBidIncrement
}

// ValidateBid applies the bid predicate against a snapshot of the listing.
// Pure; the engine re-applies it at commit time under a row lock so the
// predicate always holds against the fresh current bid.
func ValidateBid(listing *models.AuctionListing, bidderID string, amount, bidderBalance int64, now time.Time) error {
	if listing.Status != models.ListingStatusActive || !now.Before(listing.EndTime) {
		return ErrListingEnded
	}
	if listing.SellerID == bidderID {
		return newValidationError("bidderId", "seller cannot bid on their own listing")
	}
	if listing.TopBidderID == bidderID {
		return newValidationError("bidderId", "you are already the highest bidder")
	}
	if amount < MinBid(listing) {
		return newValidationError("amount", fmt.Sprintf(
			"bid must be at least %d (current bid + minimum increment)", MinBid(listing)))
	}
	// Keeps the current bid below the buyout price for the listing's whole
	// lifetime; anyone willing to pay that much uses the buyout instead
	if listing.HasBuyout() && amount >= listing.BuyoutPrice {
		return newValidationError("amount", fmt.Sprintf(
			"bid meets the buyout price (%d); use buyout instead", listing.BuyoutPrice))
	}
	if amount > bidderBalance {
		return newValidationError("amount", fmt.Sprintf(
			"insufficient balance (%d required, has %d)", amount, bidderBalance))
	}
	return nil
}

// extendForSnipe pushes the end time back when a bid lands inside the
// anti-snipe window. A sustained bidding war keeps extending in 60s steps.
func extendForSnipe(endTime, bidTime time.Time) time.Time {
	if endTime.Sub(bidTime) < snipeWindow {
		return bidTime.Add(snipeWindow)
	}
	return endTime
}

// PlaceBid validates and applies a bid in one serializable transaction. The
// bid amount is escrowed from the bidder immediately and the previous top
// bidder refunded; the anti-snipe rule may push the end time back.
func (m *Manager) PlaceBid(ctx context.Context, listingID int64, bidderID, bidderName string, amount int64) (*models.AuctionListing, error) {
	tx, err := m.repo.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the listing so the predicate runs against the fresh current bid
	listing := new(models.AuctionListing)
	err = tx.NewSelect().
		Model(listing).
		Where("id = ?", listingID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	var bidder models.Nation
	err = tx.NewSelect().
		Model(&bidder).
		Where("nation_id = ?", bidderID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bidder: %w", err)
	}

	now := m.clk.Now()
	if err := ValidateBid(listing, bidderID, amount, bidder.Balance, now); err != nil {
		return nil, err
	}

	// Escrow the bid amount from the bidder
	_, err = tx.NewUpdate().
		Model((*models.Nation)(nil)).
		Set("balance = balance - ?", amount).
		Where("nation_id = ?", bidderID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to escrow bid amount: %w", err)
	}

	// Refund the previous top bidder
	if listing.TopBidderID != "" {
		_, err = tx.NewUpdate().
			Model((*models.Nation)(nil)).
			Set("balance = balance + ?", listing.CurrentBid).
			Where("nation_id = ?", listing.TopBidderID).
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to refund previous bidder: %w", err)
		}
	}

	newEndTime := extendForSnipe(listing.EndTime, now)

	_, err = tx.NewUpdate().
		Model((*models.AuctionListing)(nil)).
		Set("current_bid = ?", amount).
		Set("top_bidder_id = ?", bidderID).
		Set("bid_count = bid_count + 1").
		Set("last_bid_time = ?", now).
		Set("end_time = ?", newEndTime).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", listingID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	bid := &models.AuctionBid{
		ListingID:  listingID,
		BidderID:   bidderID,
		BidderName: bidderName,
		Amount:     amount,
		Timestamp:  now,
		CreatedAt:  time.Now(),
	}
	if _, err := tx.NewInsert().Model(bid).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record bid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bid transaction: %w", err)
	}

	m.cache.invalidate()

	extended := !newEndTime.Equal(listing.EndTime)
	slog.Info("Bid placed",
		slog.String("type", "market"),
		slog.String("listing_code", listing.ListingCode),
		slog.String("bidder_id", bidderID),
		slog.Int64("amount", amount),
		slog.Bool("anti_snipe_extended", extended))

	listing.CurrentBid = amount
	listing.TopBidderID = bidderID
	listing.BidCount++
	listing.LastBidTime = now
	listing.EndTime = newEndTime
	return listing, nil
}

// Buyout ends an active listing immediately at the buyout price.
func (m *Manager) Buyout(ctx context.Context, listingID int64, buyerID, buyerName string) (*models.AuctionListing, error) {
	tx, err := m.repo.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	listing := new(models.AuctionListing)
	err = tx.NewSelect().
		Model(listing).
		Where("id = ?", listingID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	now := m.clk.Now()
	if listing.Status != models.ListingStatusActive || !now.Before(listing.EndTime) {
		return nil, ErrListingEnded
	}
	if !listing.HasBuyout() {
		return nil, ErrNoBuyoutPrice
	}
	if listing.SellerID == buyerID {
		return nil, newValidationError("buyerId", "seller cannot buy out their own listing")
	}

	var buyer models.Nation
	err = tx.NewSelect().
		Model(&buyer).
		Where("nation_id = ?", buyerID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}
	if buyer.Balance < listing.BuyoutPrice {
		return nil, newValidationError("amount", fmt.Sprintf(
			"insufficient balance (%d required, has %d)", listing.BuyoutPrice, buyer.Balance))
	}

	_, err = tx.NewUpdate().
		Model((*models.Nation)(nil)).
		Set("balance = balance - ?", listing.BuyoutPrice).
		Where("nation_id = ?", buyerID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to charge buyer: %w", err)
	}

	// Refund the outbid escrow before settlement
	if listing.TopBidderID != "" {
		_, err = tx.NewUpdate().
			Model((*models.Nation)(nil)).
			Set("balance = balance + ?", listing.CurrentBid).
			Where("nation_id = ?", listing.TopBidderID).
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to refund outbid nation: %w", err)
		}
	}

	listing.CurrentBid = listing.BuyoutPrice
	listing.TopBidderID = buyerID
	listing.BidCount++

	bid := &models.AuctionBid{
		ListingID:  listingID,
		BidderID:   buyerID,
		BidderName: buyerName,
		Amount:     listing.BuyoutPrice,
		Timestamp:  now,
		CreatedAt:  time.Now(),
	}
	if _, err := tx.NewInsert().Model(bid).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record buyout bid: %w", err)
	}

	// Buyout already escrowed the funds above, so settle pays the seller out
	// of the buyer's charge
	if err := m.settle(ctx, tx, listing); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit buyout: %w", err)
	}

	m.cache.invalidate()

	slog.Info("Listing bought out",
		slog.String("type", "market"),
		slog.String("listing_code", listing.ListingCode),
		slog.String("buyer_id", buyerID),
		slog.Int64("price", listing.CurrentBid))

	listing.Status = models.ListingStatusEnded
	return listing, nil
}

// settle finalizes a listing inside an existing transaction. With a winner,
// the card transfers and the seller is credited net of the success fee; the
// escrowed winning amount was already deducted at bid/buyout time. Without
// bids the card simply returns to the seller.
func (m *Manager) settle(ctx context.Context, tx bun.Tx, listing *models.AuctionListing) error {
	if listing.TopBidderID != "" {
		if err := repositories.TransferCard(ctx, tx, listing.CardInstanceID, listing.TopBidderID, false); err != nil {
			return err
		}

		proceeds := listing.CurrentBid - m.fees.SuccessFee(listing.CurrentBid)
		_, err := tx.NewUpdate().
			Model((*models.Nation)(nil)).
			Set("balance = balance + ?", proceeds).
			Where("nation_id = ?", listing.SellerID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to credit seller: %w", err)
		}
	} else {
		_, err := tx.NewUpdate().
			Model((*models.CardInstance)(nil)).
			Set("listed = FALSE").
			Set("updated_at = ?", time.Now()).
			Where("id = ?", listing.CardInstanceID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to return card to seller: %w", err)
		}
	}

	_, err := tx.NewUpdate().
		Model((*models.AuctionListing)(nil)).
		Set("status = ?", models.ListingStatusEnded).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", listing.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark listing ended: %w", err)
	}

	return nil
}

// FinalizeListing settles one naturally expired listing in its own
// transaction. Used by the expiry scheduler.
func (m *Manager) FinalizeListing(ctx context.Context, listingID int64) error {
	tx, err := m.repo.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	listing := new(models.AuctionListing)
	err = tx.NewSelect().
		Model(listing).
		Where("id = ?", listingID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.Status != models.ListingStatusActive {
		return nil // already settled or cancelled
	}
	if m.clk.Now().Before(listing.EndTime) {
		return nil // a late bid extended the deadline
	}

	if err := m.settle(ctx, tx, listing); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	m.cache.invalidate()

	slog.Info("Listing settled",
		slog.String("type", "market"),
		slog.String("listing_code", listing.ListingCode),
		slog.String("winner_id", listing.TopBidderID),
		slog.Int64("final_price", listing.CurrentBid))

	return nil
}
