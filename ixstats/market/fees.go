package market

// FeeSchedule holds the market's fee tariffs. The success fee is contingent
// on sale and never part of the up-front total.
type FeeSchedule struct {
	ListingFee          int64   `toml:"listing_fee"`
	SuccessFeeRate      float64 `toml:"success_fee_rate"`
	SuccessFeeThreshold int64   `toml:"success_fee_threshold"`
	ExpressFee          int64   `toml:"express_fee"`
	FeaturedFee         int64   `toml:"featured_fee"`
}

func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		ListingFee:          5,
		SuccessFeeRate:      0.10,
		SuccessFeeThreshold: 100,
		ExpressFee:          10,
		FeaturedFee:         25,
	}
}

// AuctionFees is the fee breakdown computed at listing time. TotalFee is the
// up-front charge: listing + express + featured, excluding the success fee.
type AuctionFees struct {
	ListingFee  int64 `json:"listingFee"`
	SuccessFee  int64 `json:"successFee"`
	ExpressFee  int64 `json:"expressFee"`
	FeaturedFee int64 `json:"featuredFee"`
	TotalFee    int64 `json:"totalFee"`
}

// Calculate derives the up-front fees for a prospective listing.
func (f FeeSchedule) Calculate(isExpress, isFeatured bool) AuctionFees {
	fees := AuctionFees{ListingFee: f.ListingFee}
	if isExpress {
		fees.ExpressFee = f.ExpressFee
	}
	if isFeatured {
		fees.FeaturedFee = f.FeaturedFee
	}
	fees.TotalFee = fees.ListingFee + fees.ExpressFee + fees.FeaturedFee
	return fees
}

// SuccessFee is charged on settlement only, and only above the threshold.
func (f FeeSchedule) SuccessFee(salePrice int64) int64 {
	if salePrice > f.SuccessFeeThreshold {
		return int64(float64(salePrice) * f.SuccessFeeRate)
	}
	return 0
}
