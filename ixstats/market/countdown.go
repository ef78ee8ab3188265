package market

import "time"

type Urgency string

const (
	UrgencySafe     Urgency = "safe"
	UrgencyModerate Urgency = "moderate"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyCritical Urgency = "critical"
)

// CountdownState is derived, never stored. Clients re-derive it every tick
// from the authoritative end time instead of decrementing a local counter.
type CountdownState struct {
	Days         int     `json:"days"`
	Hours        int     `json:"hours"`
	Minutes      int     `json:"minutes"`
	Seconds      int     `json:"seconds"`
	TotalSeconds int64   `json:"totalSeconds"`
	IsExpired    bool    `json:"isExpired"`
	Urgency      Urgency `json:"urgency"`
}

// CalculateCountdown decomposes the time remaining before endTime into
// calendar units and an urgency tier. Pure function of (endTime, now).
func CalculateCountdown(endTime, now time.Time) CountdownState {
	diff := endTime.Sub(now)
	if diff <= 0 {
		return CountdownState{IsExpired: true, Urgency: UrgencyCritical}
	}

	totalSeconds := int64(diff / time.Second)

	return CountdownState{
		Days:         int(totalSeconds / 86400),
		Hours:        int(totalSeconds % 86400 / 3600),
		Minutes:      int(totalSeconds % 3600 / 60),
		Seconds:      int(totalSeconds % 60),
		TotalSeconds: totalSeconds,
		IsExpired:    false,
		Urgency:      urgencyFor(totalSeconds),
	}
}

func urgencyFor(totalSeconds int64) Urgency {
	switch {
	case totalSeconds <= 60:
		return UrgencyCritical
	case totalSeconds <= 300:
		return UrgencyUrgent
	case totalSeconds <= 600:
		return UrgencyModerate
	default:
		return UrgencySafe
	}
}
