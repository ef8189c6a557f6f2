package service

import (
	"fmt"
	"time"

	"lacque/pkg/model"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

// parseClock returns the minutes past midnight for an HH:MM string.
func parseClock(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// dateOpen reports whether the merchant operates on the given date. A
// malformed rule (missing times, open at or after close) counts as closed
// and is reported through the second return value so callers can log it.
func dateOpen(cfg *model.MerchantConfig, day time.Time) (bool, error) {
	rule, ok := cfg.RuleFor(day.Weekday())
	if !ok || !rule.IsOpen {
		return false, nil
	}

	open, err := parseClock(rule.OpenTime)
	if err != nil {
		return false, fmt.Errorf("weekday %s: %w", day.Weekday(), err)
	}
	close, err := parseClock(rule.CloseTime)
	if err != nil {
		return false, fmt.Errorf("weekday %s: %w", day.Weekday(), err)
	}
	if open >= close {
		return false, fmt.Errorf("weekday %s: open time %s is not before close time %s",
			day.Weekday(), rule.OpenTime, rule.CloseTime)
	}

	return true, nil
}

// staffAvailable reports whether no exclusion blocks the staff member on
// the given date. Recurring exclusions match by month and day only.
func staffAvailable(exclusions []model.StaffExclusion, staffID string, day time.Time) bool {
	for _, ex := range exclusions {
		if ex.StaffID != "" && ex.StaffID != staffID {
			continue
		}

		exDay, err := time.Parse(dateLayout, ex.Date)
		if err != nil {
			continue
		}

		if ex.RecurringAnnually {
			if exDay.Month() == day.Month() && exDay.Day() == day.Day() {
				return false
			}
			continue
		}

		if exDay.Year() == day.Year() && exDay.Month() == day.Month() && exDay.Day() == day.Day() {
			return false
		}
	}
	return true
}
