package service

import (
	"sort"
	"time"

	"lacque/pkg/model"
)

// candidateTimes materializes the daily times offered by the merchant's
// active template, as minutes past midnight in ascending order.
func candidateTimes(cfg *model.MerchantConfig, rule model.WeekdayRule) []int {
	switch cfg.Template.Kind {
	case model.TemplateFixed:
		times := make([]int, 0, len(cfg.Template.Times))
		for _, t := range cfg.Template.Times {
			m, err := parseClock(t)
			if err != nil {
				continue
			}
			times = append(times, m)
		}
		sort.Ints(times)

		// The configured times are a set; repeated entries yield one slot.
		deduped := times[:0]
		for i, m := range times {
			if i == 0 || m != times[i-1] {
				deduped = append(deduped, m)
			}
		}
		return deduped

	case model.TemplateInterval:
		interval := cfg.Template.IntervalMinutes
		if interval <= 0 {
			return nil
		}
		open, err := parseClock(rule.OpenTime)
		if err != nil {
			return nil
		}
		close, err := parseClock(rule.CloseTime)
		if err != nil {
			return nil
		}

		var times []int
		for t := open; t+interval <= close; t += interval {
			times = append(times, t)
		}
		return times

	default:
		return nil
	}
}

// resolveSlots is the pure core: it combines operating rules, exclusions
// and the booking ledger snapshot into the slot list for one date. It
// performs no I/O and no caching; the ledger snapshot is authoritative
// only for this call.
func resolveSlots(
	cfg *model.MerchantConfig,
	date string,
	staffID string,
	exclusions []model.StaffExclusion,
	bookings []model.Booking,
	now time.Time,
	loc *time.Location,
) ([]model.ResolvedSlot, error) {
	day, err := parseDate(date, loc)
	if err != nil {
		return nil, err
	}

	open, ruleErr := dateOpen(cfg, day)
	if ruleErr != nil {
		// Malformed rule: the weekday counts as closed.
		return []model.ResolvedSlot{}, ruleErr
	}
	if !open {
		return []model.ResolvedSlot{}, nil
	}

	if !staffAvailable(exclusions, staffID, day) {
		return []model.ResolvedSlot{}, nil
	}

	rule, _ := cfg.RuleFor(day.Weekday())
	times := candidateTimes(cfg, rule)

	occupied := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.StaffID == staffID && b.Date == date && b.Occupies() {
			occupied[b.Time] = true
		}
	}

	slots := make([]model.ResolvedSlot, 0, len(times))
	for _, m := range times {
		clock := formatClock(m)
		slotStart := day.Add(time.Duration(m) * time.Minute)

		available := !occupied[clock] && slotStart.After(now)

		slots = append(slots, model.ResolvedSlot{
			Date:      date,
			Time:      clock,
			StaffID:   staffID,
			Available: available,
		})
	}

	return slots, nil
}

func hasAvailableSlot(slots []model.ResolvedSlot) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}

// withinHorizon reports whether the date falls in [today, today+horizonDays]
// in the merchant's local time.
func withinHorizon(day time.Time, now time.Time, horizonDays int, loc *time.Location) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	last := today.AddDate(0, 0, horizonDays)
	return !day.Before(today) && !day.After(last)
}
