package market

import (
	"errors"
	"testing"
	"time"

	"github.com/ixstats/engine/ixstats/database/models"
)

func activeListing(now time.Time) *models.AuctionListing {
	return &models.AuctionListing{
		ID:            1,
		ListingCode:   "K7KD",
		SellerID:      "nation-seller",
		StartingPrice: 100,
		CurrentBid:    100,
		Status:        models.ListingStatusActive,
		StartTime:     now.Add(-10 * time.Minute),
		EndTime:       now.Add(20 * time.Minute),
	}
}

func TestValidateBid(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mutate    func(*models.AuctionListing)
		bidderID  string
		amount    int64
		balance   int64
		wantErr   error
		wantField string
	}{
		{
			name:     "minimum increment accepted",
			bidderID: "nation-a",
			amount:   101,
			balance:  150,
		},
		{
			name:      "amount below minimum rejected",
			bidderID:  "nation-a",
			amount:    100,
			balance:   150,
			wantField: "amount",
		},
		{
			name:      "insufficient balance",
			bidderID:  "nation-a",
			amount:    101,
			balance:   50,
			wantField: "amount",
		},
		{
			name:      "seller cannot bid",
			bidderID:  "nation-seller",
			amount:    101,
			balance:   150,
			wantField: "bidderId",
		},
		{
			name: "top bidder cannot raise own bid",
			mutate: func(l *models.AuctionListing) {
				l.TopBidderID = "nation-a"
			},
			bidderID:  "nation-a",
			amount:    150,
			balance:   500,
			wantField: "bidderId",
		},
		{
			name: "bid just below the buyout price accepted",
			mutate: func(l *models.AuctionListing) {
				l.BuyoutPrice = 500
			},
			bidderID: "nation-a",
			amount:   499,
			balance:  600,
		},
		{
			name: "bid at the buyout price rejected",
			mutate: func(l *models.AuctionListing) {
				l.BuyoutPrice = 500
			},
			bidderID:  "nation-a",
			amount:    500,
			balance:   600,
			wantField: "amount",
		},
		{
			name: "bid above the buyout price rejected",
			mutate: func(l *models.AuctionListing) {
				l.BuyoutPrice = 500
			},
			bidderID:  "nation-a",
			amount:    550,
			balance:   600,
			wantField: "amount",
		},
		{
			name: "ended listing",
			mutate: func(l *models.AuctionListing) {
				l.Status = models.ListingStatusEnded
			},
			bidderID: "nation-a",
			amount:   101,
			balance:  150,
			wantErr:  ErrListingEnded,
		},
		{
			name: "past the end time",
			mutate: func(l *models.AuctionListing) {
				l.EndTime = now.Add(-time.Second)
			},
			bidderID: "nation-a",
			amount:   101,
			balance:  150,
			wantErr:  ErrListingEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := activeListing(now)
			if tt.mutate != nil {
				tt.mutate(listing)
			}

			err := ValidateBid(listing, tt.bidderID, tt.amount, tt.balance, now)

			if tt.wantErr == nil && tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateBid() unexpected error: %v", err)
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateBid() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateBid() error = %v, want validation error", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("validation field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}

func TestMinBid(t *testing.T) {
	listing := &models.AuctionListing{CurrentBid: 250}
	if got := MinBid(listing); got != 251 {
		t.Errorf("MinBid() = %d, want 251", got)
	}
}

func TestExtendForSnipe(t *testing.T) {
	endTime := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bidTime time.Time
		want    time.Time
	}{
		{
			name:    "bid outside the window leaves end time alone",
			bidTime: endTime.Add(-5 * time.Minute),
			want:    endTime,
		},
		{
			name:    "bid inside the window extends to bid time plus window",
			bidTime: endTime.Add(-30 * time.Second),
			want:    endTime.Add(30 * time.Second),
		},
		{
			name:    "bid at exactly the window boundary does not extend",
			bidTime: endTime.Add(-snipeWindow),
			want:    endTime,
		},
		{
			name:    "last-second bid",
			bidTime: endTime.Add(-time.Second),
			want:    endTime.Add(59 * time.Second),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extendForSnipe(endTime, tt.bidTime); !got.Equal(tt.want) {
				t.Errorf("extendForSnipe() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A bidding war inside the window keeps pushing the deadline: each extension
// re-arms the next one.
func TestExtendForSnipe_Repeatable(t *testing.T) {
	endTime := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	first := endTime.Add(-10 * time.Second)
	extended := extendForSnipe(endTime, first)

	second := extended.Add(-5 * time.Second)
	extendedAgain := extendForSnipe(extended, second)

	if !extendedAgain.After(extended) {
		t.Errorf("second extension %v not after first %v", extendedAgain, extended)
	}
	if want := second.Add(snipeWindow); !extendedAgain.Equal(want) {
		t.Errorf("second extension = %v, want %v", extendedAgain, want)
	}
}

func TestValidateListingInput(t *testing.T) {
	valid := CreateListingInput{
		CardInstanceID:  7,
		SellerID:        "nation-a",
		StartingPrice:   10,
		DurationMinutes: 30,
	}

	tests := []struct {
		name      string
		mutate    func(*CreateListingInput)
		wantField string
	}{
		{
			name: "valid input",
		},
		{
			name:      "missing card",
			mutate:    func(in *CreateListingInput) { in.CardInstanceID = 0 },
			wantField: "cardInstanceId",
		},
		{
			name:      "zero starting price",
			mutate:    func(in *CreateListingInput) { in.StartingPrice = 0 },
			wantField: "startingPrice",
		},
		{
			name: "buyout below starting price",
			mutate: func(in *CreateListingInput) {
				in.StartingPrice = 10
				in.BuyoutPrice = 5
			},
			wantField: "buyoutPrice",
		},
		{
			name: "buyout equal to starting price",
			mutate: func(in *CreateListingInput) {
				in.StartingPrice = 10
				in.BuyoutPrice = 10
			},
			wantField: "buyoutPrice",
		},
		{
			name:      "unsupported duration",
			mutate:    func(in *CreateListingInput) { in.DurationMinutes = 45 },
			wantField: "durationMinutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			err := ValidateListingInput(input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateListingInput() unexpected error: %v", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateListingInput() error = %v, want validation error", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("validation field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}
