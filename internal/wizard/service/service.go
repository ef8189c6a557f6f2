package service

import (
	"context"
	"errors"

	wizarderrors "lacque/internal/wizard/errors"
	"lacque/internal/wizard/validator"
	"lacque/pkg/config"
	apperrors "lacque/pkg/errors"
	"lacque/pkg/locale"
	"lacque/pkg/model"
	"lacque/pkg/sanitizer"
)

// AvailabilityResolver answers date and slot availability questions. The
// wizard embeds the availability service in-process and never caches its
// answers across steps.
type AvailabilityResolver interface {
	DaySlots(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error)
	IsDateBookable(ctx context.Context, merchantID, staffID, date string) (bool, error)
}

// MerchantFetcher provides the merchant's service catalog and operating
// configuration. The configuration's time zone drives phone-region
// detection for contact normalization.
type MerchantFetcher interface {
	Config(ctx context.Context, merchantID string) (*model.MerchantConfig, error)
	ServiceCatalog(ctx context.Context, merchantID string) ([]model.Service, error)
}

// Submitter delivers the assembled booking request to the backend. It is
// the authoritative conflict check, a slot that looked free moments ago
// may still be rejected here.
type Submitter interface {
	Submit(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error)
}

type WizardService interface {
	Start(ctx context.Context, merchantID, staffID string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	SelectDate(ctx context.Context, id, date string) (*Session, error)
	SelectTime(ctx context.Context, id, slotTime string) (*Session, error)
	AddService(ctx context.Context, id, serviceID string) (*Session, error)
	RemoveService(ctx context.Context, id, serviceID string) (*Session, error)
	ConfirmServices(ctx context.Context, id string) (*Session, error)
	SetContact(ctx context.Context, id string, contact model.Contact) (*Session, error)
	Submit(ctx context.Context, id string) (*Session, error)
	Back(ctx context.Context, id string, target State) (*Session, error)
	Recover(ctx context.Context, id string) (*Session, error)
	Abandon(ctx context.Context, id string) error
}

type wizardService struct {
	store        *SessionStore
	availability AvailabilityResolver
	merchants    MerchantFetcher
	submitter    Submitter
	events       EventPublisher
	validator    *validator.ContactValidator
	cfg          *config.Config
}

func NewWizardService(
	store *SessionStore,
	availability AvailabilityResolver,
	merchants MerchantFetcher,
	submitter Submitter,
	events EventPublisher,
	contactValidator *validator.ContactValidator,
	cfg *config.Config,
) WizardService {
	return &wizardService{
		store:        store,
		availability: availability,
		merchants:    merchants,
		submitter:    submitter,
		events:       events,
		validator:    contactValidator,
		cfg:          cfg,
	}
}

func (s *wizardService) Start(ctx context.Context, merchantID, staffID string) (*Session, error) {
	if merchantID == "" {
		return nil, apperrors.InvalidInput("Merchant ID cannot be empty")
	}
	if staffID == "" {
		return nil, apperrors.InvalidInput("Staff ID cannot be empty")
	}

	sess := newSession(merchantID, staffID)
	s.store.Put(sess)

	s.cfg.Log.Info("Wizard session started",
		"session_id", sess.ID,
		"merchant_id", merchantID,
		"staff_id", staffID,
	)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.copyLocked(), nil
}

func (s *wizardService) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.copyLocked(), nil
}

// find returns the live session; callers mutate it under its lock and hand
// out copies, never the pointer itself.
func (s *wizardService) find(id string) (*Session, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFoundWithID("Wizard session", id)
	}
	return sess, nil
}

func (s *wizardService) SelectDate(ctx context.Context, id, date string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	bookable, err := s.availability.IsDateBookable(ctx, sess.MerchantID, sess.Draft.StaffID, date)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateSelectingDate {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}
	if !bookable {
		return nil, apperrors.Validation(wizarderrors.ErrDateNotBookable.Error(), map[string]any{
			"date": date,
		})
	}

	sess.Draft.Date = date
	sess.State = StateSelectingTime
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) SelectTime(ctx context.Context, id, slotTime string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.State != StateSelectingTime {
		sess.mu.Unlock()
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}
	merchantID, staffID, date := sess.MerchantID, sess.Draft.StaffID, sess.Draft.Date
	sess.mu.Unlock()

	// The ledger can change between steps, so the chosen time is checked
	// against a fresh resolution, never the list the customer last saw.
	slots, err := s.availability.DaySlots(ctx, merchantID, staffID, date)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateSelectingTime {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}

	sess.LastResolved = slots

	var chosen *model.ResolvedSlot
	for i := range slots {
		if slots[i].Time == slotTime {
			chosen = &slots[i]
			break
		}
	}
	if chosen == nil || !chosen.Available {
		return nil, apperrors.SlotUnavailable(wizarderrors.ErrSlotNotAvailable.Error())
	}

	sess.Draft.Time = slotTime
	sess.State = StateSelectingServices
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) AddService(ctx context.Context, id, serviceID string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	catalog, err := s.merchants.ServiceCatalog(ctx, sess.MerchantID)
	if err != nil {
		s.cfg.Log.Error("Service catalog fetch failed",
			"session_id", id,
			"merchant_id", sess.MerchantID,
			"error", err,
		)
		return nil, apperrors.Unavailable("service catalog")
	}

	var svc *model.Service
	for i := range catalog {
		if catalog[i].ID == serviceID {
			svc = &catalog[i]
			break
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateSelectingServices {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}
	if svc == nil {
		return nil, apperrors.NotFoundWithID("Service", serviceID)
	}
	if !svc.IsActive {
		return nil, apperrors.Validation(wizarderrors.ErrServiceInactive.Error(), map[string]any{
			"service_id": serviceID,
		})
	}
	if sess.Draft.HasService(serviceID) {
		return sess.copyLocked(), nil
	}

	// Exceeding the cap is rejected at selection time, the customer is
	// never allowed into an invalid combination.
	total := sess.Draft.TotalDurationMinutes() + svc.DurationMinutes
	if total > s.cfg.DurationCapMinutes {
		return nil, apperrors.Validation(wizarderrors.ErrDurationCapExceeded.Error(), map[string]any{
			"total_minutes": total,
			"cap_minutes":   s.cfg.DurationCapMinutes,
		})
	}

	sess.Draft.Services = append(sess.Draft.Services, *svc)
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) RemoveService(ctx context.Context, id, serviceID string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateSelectingServices {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}

	services := sess.Draft.Services[:0]
	for _, svc := range sess.Draft.Services {
		if svc.ID != serviceID {
			services = append(services, svc)
		}
	}
	sess.Draft.Services = services
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) ConfirmServices(ctx context.Context, id string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateSelectingServices {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}
	if len(sess.Draft.Services) == 0 {
		return nil, apperrors.Validation(wizarderrors.ErrNoServicesSelected.Error(), nil)
	}

	sess.State = StateConfirmingContact
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) SetContact(ctx context.Context, id string, contact model.Contact) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	contact.Name = sanitizer.NormalizeName(contact.Name)
	contact.Email = sanitizer.NormalizeEmail(contact.Email)
	contact.Notes = sanitizer.NormalizeNotes(contact.Notes)
	contact.Phone = sanitizer.NormalizePhone(contact.Phone, s.phoneRegions(ctx, sess.MerchantID, contact.Phone)...)

	if err := s.validator.Validate(&contact); err != nil {
		return nil, apperrors.Validation("Contact validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateConfirmingContact {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}

	sess.Draft.Contact = contact
	sess.ContactConfirmed = true
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) Submit(ctx context.Context, id string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.State != StateConfirmingContact {
		sess.mu.Unlock()
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}
	if !sess.ContactConfirmed {
		sess.mu.Unlock()
		return nil, apperrors.Validation(wizarderrors.ErrContactMissing.Error(), nil)
	}

	// The request is assembled exactly once, from the full draft, on
	// entry to the submitting state.
	req := model.BookingRequest{
		MerchantID: sess.MerchantID,
		StaffID:    sess.Draft.StaffID,
		Date:       sess.Draft.Date,
		Time:       sess.Draft.Time,
		ServiceIDs: make([]string, 0, len(sess.Draft.Services)),
		Contact:    sess.Draft.Contact,
	}
	for _, svc := range sess.Draft.Services {
		req.ServiceIDs = append(req.ServiceIDs, svc.ID)
	}

	sess.State = StateSubmitting
	gen := sess.generation
	sess.touch()
	sess.mu.Unlock()

	s.publish(ctx, sess.ID, model.BookingEvent{
		Type:       model.EventBookingSubmitted,
		MerchantID: req.MerchantID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Time:       req.Time,
	})

	result, submitErr := s.submitter.Submit(ctx, req)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The customer may have navigated backward while the call was in
	// flight. The session has moved on, this result no longer applies.
	if sess.generation != gen || sess.State != StateSubmitting {
		s.cfg.Log.Info("Discarding stale submission result",
			"session_id", sess.ID,
			"state", sess.State,
		)
		return sess.copyLocked(), nil
	}

	if submitErr != nil {
		var rejection *model.SubmissionRejection
		if errors.As(submitErr, &rejection) {
			sess.State = StateFailed
			sess.FailureReason = rejection.Reason
			sess.touch()

			s.cfg.Log.Warn("Booking submission rejected",
				"session_id", sess.ID,
				"reason", rejection.Reason,
			)
			s.publish(ctx, sess.ID, model.BookingEvent{
				Type:       model.EventBookingRejected,
				MerchantID: req.MerchantID,
				StaffID:    req.StaffID,
				Date:       req.Date,
				Time:       req.Time,
				Reason:     string(rejection.Reason),
			})
			return sess.copyLocked(), nil
		}

		// Transport failure: the attempt is retryable, the draft and
		// step are both preserved.
		sess.State = StateConfirmingContact
		sess.touch()
		s.cfg.Log.Error("Booking submission failed",
			"session_id", sess.ID,
			"error", submitErr,
		)
		return nil, apperrors.Unavailable("booking submission")
	}

	sess.State = StateSucceeded
	sess.BookingID = result.BookingID
	sess.touch()

	s.cfg.Log.Info("Booking confirmed",
		"session_id", sess.ID,
		"booking_id", result.BookingID,
	)
	s.publish(ctx, sess.ID, model.BookingEvent{
		Type:       model.EventBookingConfirmed,
		MerchantID: req.MerchantID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Time:       req.Time,
	})

	// Terminal success: the draft is spent.
	sess.Draft = model.BookingDraft{}
	return sess.copyLocked(), nil
}

func (s *wizardService) Back(ctx context.Context, id string, target State) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !canGoBack(sess.State, target) {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}

	// Invalidate any in-flight submission before rewinding.
	sess.generation++
	sess.clearFrom(target)
	sess.State = target
	sess.FailureReason = ""
	sess.touch()
	return sess.copyLocked(), nil
}

// Recover routes a failed session to the step that can fix the failure. A
// taken slot sends the customer back to time selection with the date,
// staff and services intact; everything else returns to contact
// confirmation with the contact preserved.
func (s *wizardService) Recover(ctx context.Context, id string) (*Session, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateFailed {
		return nil, apperrors.Conflict(wizarderrors.ErrInvalidTransition.Error())
	}

	sess.generation++

	if sess.FailureReason == model.RejectionSlotTaken {
		sess.Draft.Time = ""
		sess.LastResolved = nil
		sess.State = StateSelectingTime
	} else {
		sess.State = StateConfirmingContact
	}

	sess.FailureReason = ""
	sess.touch()
	return sess.copyLocked(), nil
}

func (s *wizardService) Abandon(ctx context.Context, id string) error {
	sess, err := s.find(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.generation++
	sess.mu.Unlock()

	s.store.Delete(id)
	s.cfg.Log.Info("Wizard session abandoned", "session_id", id)
	return nil
}

// phoneRegions builds the candidate regions for phone normalization: the
// merchant's zone first so local numbers resolve against the salon's
// country, then the country implied by an international prefix the
// customer typed. A failed config fetch falls back to the configured
// default zone; normalization input never fails the step.
func (s *wizardService) phoneRegions(ctx context.Context, merchantID, phone string) []string {
	tz := s.cfg.DefaultTimeZone
	mc, err := s.merchants.Config(ctx, merchantID)
	if err != nil {
		s.cfg.Log.Warn("Merchant configuration fetch failed, using default zone for phone region",
			"merchant_id", merchantID,
			"error", err,
		)
	} else if mc != nil && mc.TimeZone != "" {
		tz = mc.TimeZone
	}

	regions := []string{locale.DetectRegion(tz)}
	if country := locale.InferCountryFromPhone(phone); country != nil {
		regions = append(regions, country.Code)
	}
	return regions
}

// publish is best effort. The booking outcome is already decided by the
// time an event goes out.
func (s *wizardService) publish(ctx context.Context, sessionID string, event model.BookingEvent) {
	if err := s.events.PublishBookingEvent(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"session_id", sessionID,
			"event_type", event.Type,
			"error", err,
		)
	}
}
