package policy

import (
	"teletherapy-be/internal/entity"
)

// Quota is the advisory remaining-sessions snapshot for the current billing
// period. It never blocks a booking.
type Quota struct {
	Total     int  `json:"total"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

// Remaining computes the quota snapshot from a plan's per-period allotment
// and the count of sessions already consumed in the window. The caller
// supplies usedCount from storage (sessions in scheduled, confirmed,
// in_progress or completed whose scheduled date falls in the period).
//
// An allotment of 0 or a negative sentinel means unlimited; Remaining is
// then the sentinel -1. Otherwise Remaining is clamped at 0, never negative.
func Remaining(perPeriod, usedCount int) Quota {
	if perPeriod <= 0 {
		return Quota{
			Total:     perPeriod,
			Used:      usedCount,
			Remaining: entity.UnlimitedSessions,
			Unlimited: true,
		}
	}
	remaining := perPeriod - usedCount
	if remaining < 0 {
		remaining = 0
	}
	return Quota{
		Total:     perPeriod,
		Used:      usedCount,
		Remaining: remaining,
	}
}
