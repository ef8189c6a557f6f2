package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lacque/internal/wizard/validator"
	"lacque/pkg/config"
	apperrors "lacque/pkg/errors"
	"lacque/pkg/logger"
	"lacque/pkg/model"
)

type mockAvailability struct {
	daySlotsFunc       func(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error)
	isDateBookableFunc func(ctx context.Context, merchantID, staffID, date string) (bool, error)
}

func (m *mockAvailability) DaySlots(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error) {
	if m.daySlotsFunc != nil {
		return m.daySlotsFunc(ctx, merchantID, staffID, date)
	}
	return nil, nil
}

func (m *mockAvailability) IsDateBookable(ctx context.Context, merchantID, staffID, date string) (bool, error) {
	if m.isDateBookableFunc != nil {
		return m.isDateBookableFunc(ctx, merchantID, staffID, date)
	}
	return true, nil
}

type mockMerchants struct {
	configFunc  func(ctx context.Context, merchantID string) (*model.MerchantConfig, error)
	catalogFunc func(ctx context.Context, merchantID string) ([]model.Service, error)
}

func (m *mockMerchants) Config(ctx context.Context, merchantID string) (*model.MerchantConfig, error) {
	if m.configFunc != nil {
		return m.configFunc(ctx, merchantID)
	}
	return &model.MerchantConfig{MerchantID: merchantID, TimeZone: "Asia/Jerusalem"}, nil
}

func (m *mockMerchants) ServiceCatalog(ctx context.Context, merchantID string) ([]model.Service, error) {
	if m.catalogFunc != nil {
		return m.catalogFunc(ctx, merchantID)
	}
	return nil, nil
}

type mockSubmitter struct {
	submitFunc func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error)
}

func (m *mockSubmitter) Submit(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, req)
	}
	return &model.SubmissionResult{BookingID: "bk-1"}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.BookingEvent
}

func (p *recordingPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc          *wizardService
	availability *mockAvailability
	merchants    *mockMerchants
	submitter    *mockSubmitter
	events       *recordingPublisher
	store        *SessionStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:                log,
		DurationCapMinutes: 180,
		DefaultTimeZone:    "Asia/Jerusalem",
	}

	availability := &mockAvailability{
		daySlotsFunc: func(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error) {
			return []model.ResolvedSlot{
				{Date: date, Time: "12:00", StaffID: staffID, Available: true},
				{Date: date, Time: "15:00", StaffID: staffID, Available: false},
				{Date: date, Time: "18:00", StaffID: staffID, Available: true},
			}, nil
		},
	}
	merchants := &mockMerchants{
		catalogFunc: func(ctx context.Context, merchantID string) ([]model.Service, error) {
			return []model.Service{
				{ID: "svc-manicure", Name: "Manicure", DurationMinutes: 90, Price: 120, IsActive: true},
				{ID: "svc-pedicure", Name: "Pedicure", DurationMinutes: 100, Price: 140, IsActive: true},
				{ID: "svc-retired", Name: "Retired treatment", DurationMinutes: 30, Price: 50, IsActive: false},
			}, nil
		},
	}
	submitter := &mockSubmitter{}
	events := &recordingPublisher{}
	store := NewSessionStore(30 * time.Minute)
	t.Cleanup(store.Stop)

	svc := &wizardService{
		store:        store,
		availability: availability,
		merchants:    merchants,
		submitter:    submitter,
		events:       events,
		validator:    validator.NewContactValidator(log),
		cfg:          cfg,
	}

	return &fixture{
		svc:          svc,
		availability: availability,
		merchants:    merchants,
		submitter:    submitter,
		events:       events,
		store:        store,
	}
}

func validContact() model.Contact {
	return model.Contact{
		Name:  "Dana Levi",
		Phone: "+972501234567",
		Email: "dana@example.com",
	}
}

// advance walks a fresh session to the requested state.
func (f *fixture) advance(t *testing.T, target State) *Session {
	t.Helper()
	ctx := context.Background()

	sess, err := f.svc.Start(ctx, "m1", "staff1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if target == StateSelectingDate {
		return sess
	}

	if _, err := f.svc.SelectDate(ctx, sess.ID, "2025-03-10"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if target == StateSelectingTime {
		return sess
	}

	if _, err := f.svc.SelectTime(ctx, sess.ID, "12:00"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if target == StateSelectingServices {
		return sess
	}

	if _, err := f.svc.AddService(ctx, sess.ID, "svc-manicure"); err != nil {
		t.Fatalf("AddService: %v", err)
	}
	if _, err := f.svc.ConfirmServices(ctx, sess.ID); err != nil {
		t.Fatalf("ConfirmServices: %v", err)
	}
	if target == StateConfirmingContact {
		return sess
	}

	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	return sess
}

func TestHappyPathSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	var captured model.BookingRequest
	f.submitter.submitFunc = func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
		captured = req
		return &model.SubmissionResult{BookingID: "bk-42"}, nil
	}

	result, err := f.svc.Submit(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.State != StateSucceeded {
		t.Fatalf("expected state %s, got %s", StateSucceeded, result.State)
	}
	if result.BookingID != "bk-42" {
		t.Errorf("expected booking id bk-42, got %s", result.BookingID)
	}
	if result.Draft.Date != "" || len(result.Draft.Services) != 0 {
		t.Error("draft must be discarded after success")
	}

	if captured.Date != "2025-03-10" || captured.Time != "12:00" || captured.StaffID != "staff1" {
		t.Errorf("unexpected request payload: %+v", captured)
	}
	if len(captured.ServiceIDs) != 1 || captured.ServiceIDs[0] != "svc-manicure" {
		t.Errorf("unexpected service ids: %v", captured.ServiceIDs)
	}
	if captured.Contact.Phone != "+972501234567" {
		t.Errorf("expected normalized phone, got %s", captured.Contact.Phone)
	}

	types := f.events.types()
	if len(types) != 2 || types[0] != model.EventBookingSubmitted || types[1] != model.EventBookingConfirmed {
		t.Errorf("expected submitted+confirmed events, got %v", types)
	}
}

func TestSelectDate_RejectsUnbookableDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.availability.isDateBookableFunc = func(ctx context.Context, merchantID, staffID, date string) (bool, error) {
		return false, nil
	}

	sess := f.advance(t, StateSelectingDate)
	if _, err := f.svc.SelectDate(ctx, sess.ID, "2025-03-09"); err == nil {
		t.Fatal("expected rejection for an unbookable date")
	}

	got, _ := f.svc.Get(ctx, sess.ID)
	if got.State != StateSelectingDate {
		t.Fatalf("state must not advance, got %s", got.State)
	}
}

func TestSelectTime_RejectsUnavailableSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingTime)

	// 15:00 is resolved but taken.
	_, err := f.svc.SelectTime(ctx, sess.ID, "15:00")
	if err == nil {
		t.Fatal("expected rejection for a taken slot")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeSlotUnavailable {
		t.Fatalf("expected %s, got %v", apperrors.CodeSlotUnavailable, err)
	}

	// 13:00 is not in the resolved list at all.
	if _, err := f.svc.SelectTime(ctx, sess.ID, "13:00"); err == nil {
		t.Fatal("expected rejection for an unknown time")
	}
}

func TestTransitionGates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingDate)

	if _, err := f.svc.SelectTime(ctx, sess.ID, "12:00"); err == nil {
		t.Error("SelectTime must require a selected date")
	}
	if _, err := f.svc.AddService(ctx, sess.ID, "svc-manicure"); err == nil {
		t.Error("AddService must require a selected time")
	}
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err == nil {
		t.Error("SetContact must require confirmed services")
	}
	if _, err := f.svc.Submit(ctx, sess.ID); err == nil {
		t.Error("Submit must require confirmed contact")
	}
}

func TestDurationCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingServices)

	// 90 minutes fits.
	if _, err := f.svc.AddService(ctx, sess.ID, "svc-manicure"); err != nil {
		t.Fatalf("AddService: %v", err)
	}

	// 90 + 100 = 190 > 180: rejected at selection time.
	_, err := f.svc.AddService(ctx, sess.ID, "svc-pedicure")
	if err == nil {
		t.Fatal("expected duration cap rejection")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected %s, got %v", apperrors.CodeValidation, err)
	}

	got, _ := f.svc.Get(ctx, sess.ID)
	if len(got.Draft.Services) != 1 {
		t.Fatalf("rejected service must not be recorded, have %d services", len(got.Draft.Services))
	}

	// Removing always succeeds; the other service then fits alone.
	if _, err := f.svc.RemoveService(ctx, sess.ID, "svc-manicure"); err != nil {
		t.Fatalf("RemoveService: %v", err)
	}
	if _, err := f.svc.AddService(ctx, sess.ID, "svc-pedicure"); err != nil {
		t.Fatalf("AddService after removal: %v", err)
	}
}

func TestAddService_RejectsInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingServices)

	if _, err := f.svc.AddService(ctx, sess.ID, "svc-retired"); err == nil {
		t.Fatal("expected rejection for an inactive service")
	}
}

func TestConfirmServices_RequiresSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingServices)

	if _, err := f.svc.ConfirmServices(ctx, sess.ID); err == nil {
		t.Fatal("expected rejection with no services selected")
	}
}

func TestSetContact_ValidatesAndNormalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)

	if _, err := f.svc.SetContact(ctx, sess.ID, model.Contact{Name: "Dana", Phone: "not-a-phone"}); err == nil {
		t.Fatal("expected rejection for an invalid phone")
	}

	// A local number without a prefix normalizes against the merchant region.
	got, err := f.svc.SetContact(ctx, sess.ID, model.Contact{
		Name:  "  Dana   Levi ",
		Phone: "050-123-4567",
		Email: "Dana@Example.COM",
	})
	if err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if got.Draft.Contact.Phone != "+972501234567" {
		t.Errorf("expected E.164 phone, got %s", got.Draft.Contact.Phone)
	}
	if got.Draft.Contact.Name != "Dana Levi" {
		t.Errorf("expected normalized name, got %q", got.Draft.Contact.Name)
	}
	if got.Draft.Contact.Email != "dana@example.com" {
		t.Errorf("expected lowercased email, got %q", got.Draft.Contact.Email)
	}
}

func TestSetContact_RegionFollowsMerchantZone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var configMerchant string
	f.merchants.configFunc = func(ctx context.Context, merchantID string) (*model.MerchantConfig, error) {
		configMerchant = merchantID
		return &model.MerchantConfig{MerchantID: merchantID, TimeZone: "America/New_York"}, nil
	}

	sess := f.advance(t, StateConfirmingContact)

	// A US local number resolves against the merchant's zone.
	got, err := f.svc.SetContact(ctx, sess.ID, model.Contact{
		Name:  "Dana Levi",
		Phone: "(212) 555-1234",
	})
	if err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if configMerchant != "m1" {
		t.Errorf("expected merchant configuration lookup for m1, got %q", configMerchant)
	}
	if got.Draft.Contact.Phone != "+12125551234" {
		t.Errorf("expected E.164 phone, got %s", got.Draft.Contact.Phone)
	}
}

func TestSetContact_ConfigFetchFallsBackToDefaultZone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.merchants.configFunc = func(ctx context.Context, merchantID string) (*model.MerchantConfig, error) {
		return nil, errors.New("backend unreachable")
	}

	sess := f.advance(t, StateConfirmingContact)

	// Default zone is Asia/Jerusalem; the local number still resolves.
	got, err := f.svc.SetContact(ctx, sess.ID, model.Contact{
		Name:  "Dana Levi",
		Phone: "050-123-4567",
	})
	if err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if got.Draft.Contact.Phone != "+972501234567" {
		t.Errorf("expected E.164 phone, got %s", got.Draft.Contact.Phone)
	}
}

func TestBack_ClearsDownstreamFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	got, err := f.svc.Back(ctx, sess.ID, StateSelectingTime)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}

	if got.State != StateSelectingTime {
		t.Fatalf("expected state %s, got %s", StateSelectingTime, got.State)
	}
	if got.Draft.Date != "2025-03-10" {
		t.Error("date belongs to an earlier step and must survive")
	}
	if got.Draft.Time != "" {
		t.Error("time must be cleared")
	}
	if len(got.Draft.Services) != 0 {
		t.Error("services must be cleared")
	}
	if got.Draft.Contact.Name != "" || got.ContactConfirmed {
		t.Error("contact must be cleared")
	}
}

func TestBack_ForwardTargetRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingTime)

	if _, err := f.svc.Back(ctx, sess.ID, StateConfirmingContact); err == nil {
		t.Fatal("Back must not move forward")
	}
	if _, err := f.svc.Back(ctx, sess.ID, State("bogus")); err == nil {
		t.Fatal("Back must reject unknown states")
	}
}

func TestSlotTakenRejectionAndRecovery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	f.submitter.submitFunc = func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
		return nil, &model.SubmissionRejection{Reason: model.RejectionSlotTaken}
	}

	got, err := f.svc.Submit(ctx, sess.ID)
	if err != nil {
		t.Fatalf("a rejection is an outcome, not an error: %v", err)
	}
	if got.State != StateFailed {
		t.Fatalf("expected state %s, got %s", StateFailed, got.State)
	}
	if got.FailureReason != model.RejectionSlotTaken {
		t.Fatalf("expected reason %s, got %s", model.RejectionSlotTaken, got.FailureReason)
	}

	recovered, err := f.svc.Recover(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if recovered.State != StateSelectingTime {
		t.Fatalf("a taken slot must route back to time selection, got %s", recovered.State)
	}
	if recovered.Draft.Time != "" {
		t.Error("time must be cleared for re-selection")
	}
	if recovered.Draft.Date != "2025-03-10" || recovered.Draft.StaffID != "staff1" {
		t.Error("date and staff must be preserved")
	}
	if len(recovered.Draft.Services) != 1 {
		t.Error("services must be preserved")
	}
}

func TestOtherRejectionRecoversToContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	f.submitter.submitFunc = func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
		return nil, &model.SubmissionRejection{Reason: model.RejectionServiceInactive}
	}

	if _, err := f.svc.Submit(ctx, sess.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	recovered, err := f.svc.Recover(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if recovered.State != StateConfirmingContact {
		t.Fatalf("expected state %s, got %s", StateConfirmingContact, recovered.State)
	}
	if recovered.Draft.Contact.Name == "" {
		t.Error("contact must be preserved so the customer can retry without re-entering it")
	}
}

func TestTransportFailureIsRetryable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	f.submitter.submitFunc = func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
		return nil, errors.New("connection refused")
	}

	if _, err := f.svc.Submit(ctx, sess.ID); err == nil {
		t.Fatal("transport failures must escalate")
	}

	got, _ := f.svc.Get(ctx, sess.ID)
	if got.State != StateConfirmingContact {
		t.Fatalf("session must return to %s for retry, got %s", StateConfirmingContact, got.State)
	}
	if !got.ContactConfirmed {
		t.Error("contact must remain confirmed")
	}
}

func TestInFlightSubmissionDiscardedAfterBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.submitter.submitFunc = func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
		close(inFlight)
		<-release
		return &model.SubmissionResult{BookingID: "bk-late"}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.svc.Submit(ctx, sess.ID)
	}()

	<-inFlight
	if _, err := f.svc.Back(ctx, sess.ID, StateSelectingDate); err != nil {
		t.Fatalf("Back during submission: %v", err)
	}
	close(release)
	<-done

	got, _ := f.svc.Get(ctx, sess.ID)
	if got.State != StateSelectingDate {
		t.Fatalf("late result must be discarded, state is %s", got.State)
	}
	if got.BookingID != "" {
		t.Error("late booking id must not be applied")
	}
}

func TestConcurrentReadsDuringSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateConfirmingContact)
	if _, err := f.svc.SetContact(ctx, sess.ID, validContact()); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.submitter.submitFunc = func(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
		close(inFlight)
		<-release
		return &model.SubmissionResult{BookingID: "bk-9"}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.svc.Submit(ctx, sess.ID)
	}()
	<-inFlight

	// Reads and serialization must be safe against the live session while
	// the submission mutates it.
	readers := make(chan struct{})
	go func() {
		defer close(readers)
		for i := 0; i < 100; i++ {
			got, err := f.svc.Get(ctx, sess.ID)
			if err != nil {
				t.Errorf("Get during submission: %v", err)
				return
			}
			if _, err := json.Marshal(got); err != nil {
				t.Errorf("marshal during submission: %v", err)
				return
			}
		}
	}()

	close(release)
	<-done
	<-readers

	got, err := f.svc.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get after submission: %v", err)
	}
	if got.State != StateSucceeded {
		t.Fatalf("expected state %s, got %s", StateSucceeded, got.State)
	}
}

func TestAbandonRemovesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := f.advance(t, StateSelectingTime)

	if err := f.svc.Abandon(ctx, sess.ID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if _, err := f.svc.Get(ctx, sess.ID); err == nil {
		t.Fatal("abandoned session must be gone")
	}
}
