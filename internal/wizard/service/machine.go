package service

// State is one step of the booking wizard. Forward transitions follow the
// declared order and are gated by preconditions on the draft; backward
// transitions are allowed to any earlier state and clear everything the
// target step and its successors recorded.
type State string

const (
	StateSelectingDate     State = "selecting_date"
	StateSelectingTime     State = "selecting_time"
	StateSelectingServices State = "selecting_services"
	StateConfirmingContact State = "confirming_contact"
	StateSubmitting        State = "submitting"
	StateSucceeded         State = "succeeded"
	StateFailed            State = "failed"
)

var stateOrder = map[State]int{
	StateSelectingDate:     0,
	StateSelectingTime:     1,
	StateSelectingServices: 2,
	StateConfirmingContact: 3,
	StateSubmitting:        4,
	StateSucceeded:         5,
	StateFailed:            5,
}

func (s State) Valid() bool {
	_, ok := stateOrder[s]
	return ok
}

func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// canGoBack permits moving to any strictly earlier non-terminal step,
// including while a submission is in flight.
func canGoBack(from, to State) bool {
	if !from.Valid() || !to.Valid() || to.Terminal() {
		return false
	}
	return stateOrder[to] < stateOrder[from]
}

// clearFrom erases the draft fields recorded by the given step and every
// later step. Returning to a step means redoing its selection.
func (s *Session) clearFrom(target State) {
	switch target {
	case StateSelectingDate:
		s.Draft.Date = ""
		fallthrough
	case StateSelectingTime:
		s.Draft.Time = ""
		s.LastResolved = nil
		fallthrough
	case StateSelectingServices:
		s.Draft.Services = nil
		fallthrough
	case StateConfirmingContact:
		s.Draft.Contact = contactZero
		s.ContactConfirmed = false
	}
}
