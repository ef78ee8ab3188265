package market

import "testing"

func TestFeeSchedule_Calculate(t *testing.T) {
	schedule := DefaultFeeSchedule()

	tests := []struct {
		name       string
		isExpress  bool
		isFeatured bool
		wantTotal  int64
	}{
		{"base listing", false, false, 5},
		{"express", true, false, 15},
		{"featured", false, true, 30},
		{"express and featured", true, true, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := schedule.Calculate(tt.isExpress, tt.isFeatured)

			if fees.TotalFee != tt.wantTotal {
				t.Errorf("TotalFee = %d, want %d", fees.TotalFee, tt.wantTotal)
			}
			if sum := fees.ListingFee + fees.ExpressFee + fees.FeaturedFee; fees.TotalFee != sum {
				t.Errorf("TotalFee = %d, not the sum of components %d", fees.TotalFee, sum)
			}
			// The success fee is contingent on sale and never charged up front
			if fees.SuccessFee != 0 {
				t.Errorf("SuccessFee charged at listing time: %d", fees.SuccessFee)
			}
		})
	}
}

func TestFeeSchedule_SuccessFee(t *testing.T) {
	schedule := DefaultFeeSchedule()

	tests := []struct {
		name      string
		salePrice int64
		want      int64
	}{
		{"below threshold", 50, 0},
		{"at threshold", 100, 0},
		{"above threshold", 1000, 100},
		{"just above threshold", 101, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schedule.SuccessFee(tt.salePrice); got != tt.want {
				t.Errorf("SuccessFee(%d) = %d, want %d", tt.salePrice, got, tt.want)
			}
		})
	}
}
