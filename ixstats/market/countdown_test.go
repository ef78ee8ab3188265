package market

import (
	"testing"
	"time"
)

func TestCalculateCountdown(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		endTime     time.Time
		wantExpired bool
		wantUrgency Urgency
		wantTotal   int64
	}{
		{
			name:        "expired exactly at deadline",
			endTime:     now,
			wantExpired: true,
			wantUrgency: UrgencyCritical,
		},
		{
			name:        "expired in the past",
			endTime:     now.Add(-time.Hour),
			wantExpired: true,
			wantUrgency: UrgencyCritical,
		},
		{
			name:        "critical at 60 seconds",
			endTime:     now.Add(60 * time.Second),
			wantUrgency: UrgencyCritical,
			wantTotal:   60,
		},
		{
			name:        "urgent just above the critical boundary",
			endTime:     now.Add(61 * time.Second),
			wantUrgency: UrgencyUrgent,
			wantTotal:   61,
		},
		{
			name:        "urgent at 300 seconds",
			endTime:     now.Add(300 * time.Second),
			wantUrgency: UrgencyUrgent,
			wantTotal:   300,
		},
		{
			name:        "moderate just above the urgent boundary",
			endTime:     now.Add(301 * time.Second),
			wantUrgency: UrgencyModerate,
			wantTotal:   301,
		},
		{
			name:        "moderate at 600 seconds",
			endTime:     now.Add(600 * time.Second),
			wantUrgency: UrgencyModerate,
			wantTotal:   600,
		},
		{
			name:        "safe beyond ten minutes",
			endTime:     now.Add(601 * time.Second),
			wantUrgency: UrgencySafe,
			wantTotal:   601,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCountdown(tt.endTime, now)
			if got.IsExpired != tt.wantExpired {
				t.Errorf("IsExpired = %v, want %v", got.IsExpired, tt.wantExpired)
			}
			if got.Urgency != tt.wantUrgency {
				t.Errorf("Urgency = %s, want %s", got.Urgency, tt.wantUrgency)
			}
			if got.TotalSeconds != tt.wantTotal {
				t.Errorf("TotalSeconds = %d, want %d", got.TotalSeconds, tt.wantTotal)
			}
		})
	}
}

func TestCalculateCountdown_Decomposition(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	endTime := now.Add(26*time.Hour + 3*time.Minute + 4*time.Second)

	got := CalculateCountdown(endTime, now)

	if got.Days != 1 || got.Hours != 2 || got.Minutes != 3 || got.Seconds != 4 {
		t.Errorf("decomposition = %dd %dh %dm %ds, want 1d 2h 3m 4s",
			got.Days, got.Hours, got.Minutes, got.Seconds)
	}
}

// The countdown is pure: calling it twice with the same inputs must yield the
// same state regardless of wall-clock time.
func TestCalculateCountdown_Pure(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	endTime := now.Add(42 * time.Second)

	first := CalculateCountdown(endTime, now)
	time.Sleep(5 * time.Millisecond)
	second := CalculateCountdown(endTime, now)

	if first != second {
		t.Errorf("countdown not pure: %+v != %+v", first, second)
	}
}
