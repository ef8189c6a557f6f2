package model

// StaffExclusion marks a date on which a specific staff member is not
// bookable regardless of the merchant's operating hours. Date is a
// "YYYY-MM-DD" string. When RecurringAnnually is set the exclusion matches
// the same month and day every year (anniversaries, public holidays).
type StaffExclusion struct {
	StaffID           string `json:"staff_id" validate:"required"`
	Date              string `json:"date" validate:"required,valid_date"`
	Label             string `json:"label,omitempty" validate:"omitempty,max=100"`
	RecurringAnnually bool   `json:"recurring_annually"`
}
