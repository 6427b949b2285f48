package policy

import (
	"time"

	"teletherapy-be/internal/entity"
)

// FourWeekPeriodDays is the length of one every_4_weeks billing period.
const FourWeekPeriodDays = 28

// Period is a half-open [Start, End) billing window.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// CurrentPeriod computes the billing window containing now.
//
//   - every_4_weeks: consecutive 28-day periods tiled from the start date.
//   - monthly: the calendar month of now, 00:00 of day 1 through 23:59:59
//     of the last day.
//   - anything else (pay_as_you_go, one_time, unknown): start date (or first
//     of the current month when the start is zero) through the next billing
//     date when present, else the last day of the current month.
//
// Unknown cycle kinds degrade to the fallback branch rather than failing;
// this is reached from contexts with no recovery path.
func CurrentPeriod(startDate time.Time, cycle entity.BillingCycle, nextBillingDate *time.Time, now time.Time) Period {
	switch cycle {
	case entity.BillingCycleEvery4Weeks:
		if startDate.IsZero() {
			return fallbackPeriod(startDate, nextBillingDate, now)
		}
		startDay := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
		index := daysBetween(startDay, now) / FourWeekPeriodDays
		if index < 0 {
			index = 0
		}
		start := startDay.AddDate(0, 0, index*FourWeekPeriodDays)
		return Period{Start: start, End: start.AddDate(0, 0, FourWeekPeriodDays)}

	case entity.BillingCycleMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return Period{Start: start, End: end}

	default:
		return fallbackPeriod(startDate, nextBillingDate, now)
	}
}

// daysBetween counts calendar days from a to b, ignoring the time of day.
// Counting in calendar days keeps period boundaries aligned with AddDate
// even when a DST shift makes a day shorter or longer than 24 hours.
func daysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func fallbackPeriod(startDate time.Time, nextBillingDate *time.Time, now time.Time) Period {
	start := startDate
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if nextBillingDate != nil {
		return Period{Start: start, End: *nextBillingDate}
	}
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0).Add(-time.Second)
	return Period{Start: start, End: end}
}

// NextBillingDate computes the first renewal boundary after the start date,
// using the same boundary math as CurrentPeriod. Cycles without renewal
// (pay_as_you_go, one_time) have none.
func NextBillingDate(startDate time.Time, cycle entity.BillingCycle) *time.Time {
	switch cycle {
	case entity.BillingCycleEvery4Weeks:
		next := startDate.AddDate(0, 0, FourWeekPeriodDays)
		return &next
	case entity.BillingCycleMonthly:
		next := startDate.AddDate(0, 1, 0)
		return &next
	default:
		return nil
	}
}
