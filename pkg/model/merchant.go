package model

import "time"

// Template kinds. Exactly one template is active per merchant at a time.
const (
	TemplateFixed    = "fixed"
	TemplateInterval = "interval"
)

// WeekdayRule describes whether a merchant is open on a given weekday and,
// when open, the daily operating window. Times are "HH:MM" 24-hour strings.
// Invariant: when IsOpen is false the times are empty; when true,
// OpenTime < CloseTime. Rules violating the invariant are treated as closed
// by the resolution engine, never guessed at.
type WeekdayRule struct {
	Weekday   time.Weekday `json:"weekday" validate:"min=0,max=6"`
	IsOpen    bool         `json:"is_open"`
	OpenTime  string       `json:"open_time,omitempty" validate:"omitempty,valid_clock"`
	CloseTime string       `json:"close_time,omitempty" validate:"omitempty,valid_clock"`
}

// SlotTemplate defines which start times a merchant offers each open day.
// Kind "fixed" enumerates Times verbatim; kind "interval" generates starts
// every IntervalMinutes between the weekday's open and close times.
type SlotTemplate struct {
	Kind            string   `json:"kind" validate:"required,oneof=fixed interval"`
	Times           []string `json:"times,omitempty" validate:"omitempty,dive,valid_clock"`
	IntervalMinutes int      `json:"interval_minutes,omitempty" validate:"omitempty,min=5,max=480"`
}

// MerchantConfig is the shape returned by the merchant-configuration
// collaborator: one rule per weekday plus the active slot template.
type MerchantConfig struct {
	MerchantID   string        `json:"merchant_id" validate:"required"`
	TimeZone     string        `json:"time_zone,omitempty" validate:"omitempty,timezone"`
	WeekdayRules []WeekdayRule `json:"weekday_rules" validate:"required,len=7,dive"`
	Template     SlotTemplate  `json:"slot_template" validate:"required"`
}

// RuleFor returns the rule for the given weekday, or false when the
// configuration carries no rule for it (treated as closed downstream).
func (c *MerchantConfig) RuleFor(day time.Weekday) (WeekdayRule, bool) {
	for _, rule := range c.WeekdayRules {
		if rule.Weekday == day {
			return rule, true
		}
	}
	return WeekdayRule{}, false
}

// Service is a bookable offering. A booking request references one or more
// active services; inactive services are never selectable in the wizard.
type Service struct {
	ID              string  `json:"id" validate:"required"`
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           float64 `json:"price" validate:"min=0"`
	IsActive        bool    `json:"is_active"`
}
