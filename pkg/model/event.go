package model

import "time"

// Booking lifecycle event types published to Kafka.
const (
	EventBookingSubmitted = "booking.submitted"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
)

// BookingEvent is the payload published on the booking-events topic. The
// operator console consumes these to render a live activity feed.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	MerchantID string    `json:"merchant_id"`
	StaffID    string    `json:"staff_id"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
