package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusEnded     ListingStatus = "ended"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// AuctionListing is a card instance offered for sale. CurrentBid starts at
// StartingPrice and only ever increases; EndTime is game time and may be
// pushed back by the anti-snipe rule.
type AuctionListing struct {
	bun.BaseModel `bun:"table:auction_listings,alias:al"`

	ID             int64         `bun:"id,pk,autoincrement"`
	ListingCode    string        `bun:"listing_code,notnull,unique"`
	CardInstanceID int64         `bun:"card_instance_id,notnull"`
	SellerID       string        `bun:"seller_id,notnull"`
	SellerName     string        `bun:"seller_name,notnull"`

	StartingPrice int64  `bun:"starting_price,notnull"`
	CurrentBid    int64  `bun:"current_bid,notnull"`
	BuyoutPrice   int64  `bun:"buyout_price,nullzero"`
	TopBidderID   string `bun:"top_bidder_id"`
	BidCount      int    `bun:"bid_count,notnull,default:0"`

	Status     ListingStatus `bun:"status,notnull"`
	IsExpress  bool          `bun:"is_express,notnull,default:false"`
	IsFeatured bool          `bun:"is_featured,notnull,default:false"`

	ListingFee int64 `bun:"listing_fee,notnull"`
	TotalFee   int64 `bun:"total_fee,notnull"`

	StartTime time.Time `bun:"start_time,notnull"`
	EndTime   time.Time `bun:"end_time,notnull"`

	LastBidTime time.Time `bun:"last_bid_time"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// HasBuyout reports whether the seller set a buyout price.
func (l *AuctionListing) HasBuyout() bool {
	return l.BuyoutPrice > 0
}

type AuctionBid struct {
	bun.BaseModel `bun:"table:auction_bids,alias:ab"`

	ID         int64     `bun:"id,pk,autoincrement"`
	ListingID  int64     `bun:"listing_id,notnull"`
	BidderID   string    `bun:"bidder_id,notnull"`
	BidderName string    `bun:"bidder_name,notnull"`
	Amount     int64     `bun:"amount,notnull"`
	Timestamp  time.Time `bun:"timestamp,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
