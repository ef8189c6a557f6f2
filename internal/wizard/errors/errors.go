package errors

import "errors"

var (
	ErrInvalidTransition = errors.New("transition not allowed from current state")

	ErrDateNotBookable     = errors.New("date is not bookable")
	ErrSlotNotAvailable    = errors.New("time slot is not available")
	ErrServiceInactive     = errors.New("service is not active")
	ErrDurationCapExceeded = errors.New("selected services exceed the duration cap")
	ErrNoServicesSelected  = errors.New("at least one service must be selected")
	ErrContactMissing      = errors.New("contact details are not confirmed")
)
