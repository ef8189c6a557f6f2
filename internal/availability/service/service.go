package service

import (
	"context"
	"time"

	availerrors "lacque/internal/availability/errors"
	"lacque/pkg/config"
	apperrors "lacque/pkg/errors"
	"lacque/pkg/model"
)

// MerchantFetcher provides the merchant's operating calendar and active
// slot template.
type MerchantFetcher interface {
	Config(ctx context.Context, merchantID string) (*model.MerchantConfig, error)
}

// ExclusionFetcher provides per-staff non-availability dates.
type ExclusionFetcher interface {
	ForStaff(ctx context.Context, merchantID, staffID string) ([]model.StaffExclusion, error)
}

// LedgerFetcher provides a read-only snapshot of existing bookings. The
// snapshot is fetched fresh on every resolution, never cached.
type LedgerFetcher interface {
	Bookings(ctx context.Context, merchantID, staffID, date string) ([]model.Booking, error)
}

type AvailabilityService interface {
	DaySlots(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error)
	IsDateBookable(ctx context.Context, merchantID, staffID, date string) (bool, error)
	BookableDates(ctx context.Context, merchantID, staffID, from, to string) ([]string, error)
}

type availabilityService struct {
	merchants  MerchantFetcher
	exclusions ExclusionFetcher
	ledger     LedgerFetcher
	cfg        *config.Config
	now        func() time.Time
}

func NewAvailabilityService(
	merchants MerchantFetcher,
	exclusions ExclusionFetcher,
	ledger LedgerFetcher,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		merchants:  merchants,
		exclusions: exclusions,
		ledger:     ledger,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *availabilityService) location(mc *model.MerchantConfig) *time.Location {
	if mc.TimeZone != "" {
		if loc, err := time.LoadLocation(mc.TimeZone); err == nil {
			return loc
		}
		s.cfg.Log.Warn("Invalid merchant time zone, using default",
			"merchant_time_zone", mc.TimeZone,
			"default", s.cfg.DefaultTimeZone,
		)
	}
	loc, err := time.LoadLocation(s.cfg.DefaultTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// fetchInputs gathers the three collaborator inputs for one resolution.
// Missing merchant configuration fails closed (no open days). Missing
// exclusions fail open (no exclusions); blocking all bookings because a
// holiday list is unreachable would be wrong. A missing ledger escalates,
// slots that cannot be verified are never offered silently.
func (s *availabilityService) fetchInputs(ctx context.Context, merchantID, staffID, date string) (*model.MerchantConfig, []model.StaffExclusion, []model.Booking, error) {
	mc, err := s.merchants.Config(ctx, merchantID)
	if err != nil {
		s.cfg.Log.Error("Merchant configuration fetch failed, treating all days as closed",
			"merchant_id", merchantID,
			"error", err,
		)
		return nil, nil, nil, availerrors.ErrConfigUnavailable
	}

	exclusions, err := s.exclusions.ForStaff(ctx, merchantID, staffID)
	if err != nil {
		s.cfg.Log.Warn("Exclusion fetch failed, proceeding without exclusions",
			"merchant_id", merchantID,
			"staff_id", staffID,
			"error", err,
		)
		exclusions = nil
	}

	bookings, err := s.ledger.Bookings(ctx, merchantID, staffID, date)
	if err != nil {
		s.cfg.Log.Error("Booking ledger fetch failed, availability unknown",
			"merchant_id", merchantID,
			"staff_id", staffID,
			"date", date,
			"error", err,
		)
		return nil, nil, nil, availerrors.ErrLedgerUnavailable
	}

	return mc, exclusions, bookings, nil
}

func (s *availabilityService) DaySlots(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error) {
	mc, exclusions, bookings, err := s.fetchInputs(ctx, merchantID, staffID, date)
	if err != nil {
		if err == availerrors.ErrConfigUnavailable {
			return []model.ResolvedSlot{}, nil
		}
		return nil, apperrors.AvailabilityUnknown(err)
	}

	loc := s.location(mc)
	slots, ruleErr := resolveSlots(mc, date, staffID, exclusions, bookings, s.now().In(loc), loc)
	if ruleErr != nil {
		if slots == nil {
			return nil, apperrors.InvalidInput(availerrors.ErrInvalidDate.Error() + ": " + date)
		}
		s.cfg.Log.Warn("Operating rule anomaly, weekday treated as closed",
			"merchant_id", merchantID,
			"date", date,
			"error", ruleErr,
		)
	}

	return slots, nil
}

func (s *availabilityService) IsDateBookable(ctx context.Context, merchantID, staffID, date string) (bool, error) {
	mc, exclusions, bookings, err := s.fetchInputs(ctx, merchantID, staffID, date)
	if err != nil {
		if err == availerrors.ErrConfigUnavailable {
			return false, nil
		}
		return false, apperrors.AvailabilityUnknown(err)
	}

	loc := s.location(mc)
	now := s.now().In(loc)

	day, parseErr := parseDate(date, loc)
	if parseErr != nil {
		return false, apperrors.InvalidInput(availerrors.ErrInvalidDate.Error() + ": " + date)
	}

	if !withinHorizon(day, now, s.cfg.BookingHorizonDays, loc) {
		return false, nil
	}

	slots, ruleErr := resolveSlots(mc, date, staffID, exclusions, bookings, now, loc)
	if ruleErr != nil {
		s.cfg.Log.Warn("Operating rule anomaly, weekday treated as closed",
			"merchant_id", merchantID,
			"date", date,
			"error", ruleErr,
		)
		return false, nil
	}

	return hasAvailableSlot(slots), nil
}

// BookableDates folds IsDateBookable over a date range, clamped to the
// booking horizon. Used by calendar rendering.
func (s *availabilityService) BookableDates(ctx context.Context, merchantID, staffID, from, to string) ([]string, error) {
	mc, err := s.merchants.Config(ctx, merchantID)
	if err != nil {
		s.cfg.Log.Error("Merchant configuration fetch failed, treating all days as closed",
			"merchant_id", merchantID,
			"error", err,
		)
		return []string{}, nil
	}

	loc := s.location(mc)
	now := s.now().In(loc)

	start, err := parseDate(from, loc)
	if err != nil {
		return nil, apperrors.InvalidInput(availerrors.ErrInvalidDate.Error() + ": " + from)
	}
	end, err := parseDate(to, loc)
	if err != nil {
		return nil, apperrors.InvalidInput(availerrors.ErrInvalidDate.Error() + ": " + to)
	}
	if end.Before(start) {
		return nil, apperrors.InvalidInput("Date range end precedes start")
	}

	exclusions, err := s.exclusions.ForStaff(ctx, merchantID, staffID)
	if err != nil {
		s.cfg.Log.Warn("Exclusion fetch failed, proceeding without exclusions",
			"merchant_id", merchantID,
			"staff_id", staffID,
			"error", err,
		)
		exclusions = nil
	}

	dates := make([]string, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !withinHorizon(day, now, s.cfg.BookingHorizonDays, loc) {
			continue
		}

		date := day.Format(dateLayout)
		bookings, err := s.ledger.Bookings(ctx, merchantID, staffID, date)
		if err != nil {
			return nil, apperrors.AvailabilityUnknown(availerrors.ErrLedgerUnavailable)
		}

		slots, ruleErr := resolveSlots(mc, date, staffID, exclusions, bookings, now, loc)
		if ruleErr != nil {
			s.cfg.Log.Warn("Operating rule anomaly, weekday treated as closed",
				"merchant_id", merchantID,
				"date", date,
				"error", ruleErr,
			)
			continue
		}

		if hasAvailableSlot(slots) {
			dates = append(dates, date)
		}
	}

	return dates, nil
}
