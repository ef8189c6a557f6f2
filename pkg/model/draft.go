package model

// Contact holds the customer details confirmed in the last wizard step.
// Phone is normalized to E.164 before the draft leaves the wizard.
type Contact struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,valid_phone"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Notes string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingDraft is the in-progress state of one booking attempt. It is owned
// exclusively by the wizard session that created it, mutated step by step,
// and discarded once the attempt reaches a terminal state.
type BookingDraft struct {
	Date     string    `json:"date,omitempty"`
	Time     string    `json:"time,omitempty"`
	StaffID  string    `json:"staff_id,omitempty"`
	Services []Service `json:"services,omitempty"`
	Contact  Contact   `json:"contact"`
}

// TotalDurationMinutes sums the selected services' durations; the wizard
// compares it against the configured cap on every selection.
func (d *BookingDraft) TotalDurationMinutes() int {
	total := 0
	for _, svc := range d.Services {
		total += svc.DurationMinutes
	}
	return total
}

// HasService reports whether the draft already contains the given service.
func (d *BookingDraft) HasService(serviceID string) bool {
	for _, svc := range d.Services {
		if svc.ID == serviceID {
			return true
		}
	}
	return false
}

// BookingRequest is the immutable payload assembled from a complete draft
// on entry to the submitting state. It is the only thing the submission
// collaborator ever sees.
type BookingRequest struct {
	MerchantID string   `json:"merchant_id"`
	StaffID    string   `json:"staff_id"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	ServiceIDs []string `json:"service_ids"`
	Contact    Contact  `json:"contact"`
}

// SubmissionResult is returned by the submission collaborator on success.
type SubmissionResult struct {
	BookingID string `json:"booking_id"`
}

type RejectionReason string

const (
	RejectionSlotTaken       RejectionReason = "slot_no_longer_available"
	RejectionServiceInactive RejectionReason = "service_inactive"
	RejectionValidation      RejectionReason = "validation_error"
)

// SubmissionRejection is a structured refusal from the submission
// collaborator. It implements error so clients can surface it typed.
type SubmissionRejection struct {
	Reason  RejectionReason `json:"reason"`
	Message string          `json:"message,omitempty"`
}

func (r *SubmissionRejection) Error() string {
	if r.Message != "" {
		return string(r.Reason) + ": " + r.Message
	}
	return string(r.Reason)
}
