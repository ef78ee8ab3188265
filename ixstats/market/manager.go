package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ixstats/engine/ixstats/clock"
	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/ixstats/engine/ixstats/database/repositories"
)

const (
	// MinBidIncrement is the smallest allowed step over the current bid.
	MinBidIncrement = 1

	// snipeWindow is the anti-snipe horizon: a bid landing inside it pushes
	// the end time to bidTime + snipeWindow. Repeats without limit.
	snipeWindow = 60 * time.Second

	defaultCacheTTL = 5 * time.Second
)

// allowedDurations are the listing durations the market accepts, in game
// minutes.
var allowedDurations = map[int]bool{30: true, 60: true}

// Manager owns the listing lifecycle: creation, queries, cancellation and
// settlement. Bidding lives in bid.go on the same type.
type Manager struct {
	repo  repositories.AuctionRepository
	cards repositories.CardRepository
	fees  FeeSchedule
	clk   clock.Clock
	cache *snapshotCache
	codes codeGenerator
}

func NewManager(repo repositories.AuctionRepository, cards repositories.CardRepository, fees FeeSchedule, clk clock.Clock) *Manager {
	if repo == nil {
		panic("auction repository cannot be nil")
	}
	if cards == nil {
		panic("card repository cannot be nil")
	}

	return &Manager{
		repo:  repo,
		cards: cards,
		fees:  fees,
		clk:   clk,
		cache: newSnapshotCache(defaultCacheTTL),
	}
}

func (m *Manager) Fees() FeeSchedule {
	return m.fees
}

type CreateListingInput struct {
	CardInstanceID  int64  `json:"cardInstanceId"`
	SellerID        string `json:"sellerId"`
	SellerName      string `json:"sellerName"`
	StartingPrice   int64  `json:"startingPrice"`
	BuyoutPrice     int64  `json:"buyoutPrice"`
	DurationMinutes int    `json:"durationMinutes"`
	IsExpress       bool   `json:"isExpress"`
	IsFeatured      bool   `json:"isFeatured"`
}

// ValidateListingInput applies the listing-time invariants. Pure; the
// balance check happens later inside the creation transaction.
func ValidateListingInput(input CreateListingInput) error {
	if input.CardInstanceID == 0 {
		return newValidationError("cardInstanceId", "a card must be selected")
	}
	if input.StartingPrice < 1 {
		return newValidationError("startingPrice", "starting price must be at least 1")
	}
	if input.BuyoutPrice > 0 && input.BuyoutPrice <= input.StartingPrice {
		return newValidationError("buyoutPrice", "buyout price must exceed starting price")
	}
	if !allowedDurations[input.DurationMinutes] {
		return newValidationError("durationMinutes", "duration must be 30 or 60 minutes")
	}
	return nil
}

// CreateListing validates the input, charges the up-front fee, marks the card
// as listed and inserts the listing, all in one serializable transaction.
func (m *Manager) CreateListing(ctx context.Context, input CreateListingInput) (*models.AuctionListing, error) {
	if err := ValidateListingInput(input); err != nil {
		return nil, err
	}

	fees := m.fees.Calculate(input.IsExpress, input.IsFeatured)

	code, err := m.codes.next()
	if err != nil {
		return nil, fmt.Errorf("failed to generate listing code: %w", err)
	}

	tx, err := m.repo.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock and verify card ownership
	var card models.CardInstance
	err = tx.NewSelect().
		Model(&card).
		Where("id = ? AND owner_id = ?", input.CardInstanceID, input.SellerID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, newValidationError("cardInstanceId", "card not found in your collection")
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card.Listed {
		return nil, newValidationError("cardInstanceId", "card is already listed")
	}

	// Lock seller and verify the fee is affordable
	var seller models.Nation
	err = tx.NewSelect().
		Model(&seller).
		Where("nation_id = ?", input.SellerID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller.Balance < fees.TotalFee {
		return nil, newValidationError("fees", fmt.Sprintf(
			"insufficient balance for listing fees (%d required, has %d)", fees.TotalFee, seller.Balance))
	}

	_, err = tx.NewUpdate().
		Model((*models.Nation)(nil)).
		Set("balance = balance - ?", fees.TotalFee).
		Where("nation_id = ?", input.SellerID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to charge listing fees: %w", err)
	}

	_, err = tx.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("listed = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", input.CardInstanceID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mark card as listed: %w", err)
	}

	now := m.clk.Now()
	listing := &models.AuctionListing{
		ListingCode:    code,
		CardInstanceID: input.CardInstanceID,
		SellerID:       input.SellerID,
		SellerName:     input.SellerName,
		StartingPrice:  input.StartingPrice,
		CurrentBid:     input.StartingPrice,
		BuyoutPrice:    input.BuyoutPrice,
		Status:         models.ListingStatusActive,
		IsExpress:      input.IsExpress,
		IsFeatured:     input.IsFeatured,
		ListingFee:     fees.ListingFee,
		TotalFee:       fees.TotalFee,
		StartTime:      now,
		EndTime:        now.Add(time.Duration(input.DurationMinutes) * time.Minute),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := tx.NewInsert().Model(listing).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit listing transaction: %w", err)
	}

	m.cache.invalidate()

	slog.Info("Listing created",
		slog.String("type", "market"),
		slog.String("listing_code", listing.ListingCode),
		slog.String("seller_id", input.SellerID),
		slog.Int64("starting_price", input.StartingPrice),
		slog.Int64("total_fee", fees.TotalFee))

	return listing, nil
}

func (m *Manager) GetByListingCode(ctx context.Context, code string) (*models.AuctionListing, error) {
	listing, err := m.repo.GetByListingCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("listing not found: %w", err)
	}
	return listing, nil
}

// Countdown derives the countdown state for a listing against game time.
func (m *Manager) Countdown(listing *models.AuctionListing) CountdownState {
	return CalculateCountdown(listing.EndTime, m.clk.Now())
}

// ActiveListings returns listings that are active and not yet past their end
// time on the game clock.
func (m *Manager) ActiveListings(ctx context.Context) ([]*models.AuctionListing, error) {
	listings, err := m.repo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}

	now := m.clk.Now()
	active := make([]*models.AuctionListing, 0, len(listings))
	for _, listing := range listings {
		if now.Before(listing.EndTime) {
			active = append(active, listing)
		}
	}
	return active, nil
}

// MarketData answers the market browse query with filtering, sorting and
// pagination, through the snapshot cache.
func (m *Manager) MarketData(ctx context.Context, filters MarketFilters) ([]*models.AuctionListing, int, error) {
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}

	if listings, total, ok := m.cache.get(filters); ok {
		return listings, total, nil
	}

	listings, err := m.ActiveListings(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := listings[:0:0]
	for _, l := range listings {
		if filters.MinPrice > 0 && l.CurrentBid < filters.MinPrice {
			continue
		}
		if filters.MaxPrice > 0 && l.CurrentBid > filters.MaxPrice {
			continue
		}
		if filters.FeaturedOnly && !l.IsFeatured {
			continue
		}
		if filters.Rarity != "" {
			card, err := m.cards.GetByID(ctx, l.CardInstanceID)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to resolve card rarity: %w", err)
			}
			if !strings.EqualFold(card.Rarity, filters.Rarity) {
				continue
			}
		}
		filtered = append(filtered, l)
	}

	sortListings(filtered, filters.SortBy)

	total := len(filtered)
	start := (filters.Page - 1) * filters.PageSize
	if start > total {
		start = total
	}
	end := start + filters.PageSize
	if end > total {
		end = total
	}
	page := filtered[start:end]

	m.cache.put(filters, page, total)
	return page, total, nil
}

func sortListings(listings []*models.AuctionListing, sortBy string) {
	switch sortBy {
	case "price_asc":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].CurrentBid < listings[j].CurrentBid })
	case "price_desc":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].CurrentBid > listings[j].CurrentBid })
	case "ending_soon":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].EndTime.Before(listings[j].EndTime) })
	default: // newest
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	}
}

// CancelListing withdraws an active listing. Seller-only, and only while no
// bids have been placed.
func (m *Manager) CancelListing(ctx context.Context, listingID int64, requesterID string) error {
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

	if listing.SellerID != requesterID {
		return ErrNotSeller
	}
	if listing.Status != models.ListingStatusActive {
		return ErrListingEnded
	}
	if listing.BidCount > 0 {
		return ErrListingHasBids
	}

	_, err = tx.NewUpdate().
		Model((*models.AuctionListing)(nil)).
		Set("status = ?", models.ListingStatusCancelled).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", listingID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cancel listing: %w", err)
	}

	_, err = tx.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("listed = FALSE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", listing.CardInstanceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unlist card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	m.cache.invalidate()

	slog.Info("Listing cancelled",
		slog.String("type", "market"),
		slog.String("listing_code", listing.ListingCode),
		slog.String("seller_id", requesterID))

	return nil
}
