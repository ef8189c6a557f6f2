package model

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Booking is an already-placed appointment as reported by the booking
// ledger. The resolution engine only ever reads these; it never creates,
// mutates or deletes them.
type Booking struct {
	ID              string        `json:"id,omitempty"`
	StaffID         string        `json:"staff_id" validate:"required"`
	Date            string        `json:"date" validate:"required,valid_date"`
	Time            string        `json:"time" validate:"required,valid_clock"`
	DurationMinutes int           `json:"duration_minutes" validate:"required,min=5,max=480"`
	Status          BookingStatus `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}

// Occupies reports whether this booking counts against slot availability.
// Only cancelled bookings release their slot.
func (b *Booking) Occupies() bool {
	return b.Status != StatusCancelled
}
