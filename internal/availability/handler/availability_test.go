package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "lacque/pkg/errors"
	"lacque/pkg/logger"
	"lacque/pkg/model"
)

type mockAvailabilityService struct {
	daySlotsFunc      func(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error)
	bookableDatesFunc func(ctx context.Context, merchantID, staffID, from, to string) ([]string, error)
}

func (m *mockAvailabilityService) DaySlots(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error) {
	if m.daySlotsFunc != nil {
		return m.daySlotsFunc(ctx, merchantID, staffID, date)
	}
	return []model.ResolvedSlot{}, nil
}

func (m *mockAvailabilityService) IsDateBookable(ctx context.Context, merchantID, staffID, date string) (bool, error) {
	return true, nil
}

func (m *mockAvailabilityService) BookableDates(ctx context.Context, merchantID, staffID, from, to string) ([]string, error) {
	if m.bookableDatesFunc != nil {
		return m.bookableDatesFunc(ctx, merchantID, staffID, from, to)
	}
	return []string{}, nil
}

func testHandler(mock *mockAvailabilityService) *AvailabilityHandler {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewAvailabilityHandler(mock, log)
}

func slotParams() httprouter.Params {
	return httprouter.Params{
		{Key: "merchantId", Value: "m1"},
		{Key: "staffId", Value: "staff1"},
	}
}

func TestDaySlots_OK(t *testing.T) {
	var gotMerchant, gotStaff, gotDate string
	mock := &mockAvailabilityService{
		daySlotsFunc: func(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error) {
			gotMerchant, gotStaff, gotDate = merchantID, staffID, date
			return []model.ResolvedSlot{
				{Date: date, Time: "12:00", StaffID: staffID, Available: true},
			}, nil
		},
	}
	h := testHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants/m1/staff/staff1/slots?date=2025-03-10", nil)
	w := httptest.NewRecorder()

	h.DaySlots(w, req, slotParams())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotMerchant != "m1" || gotStaff != "staff1" || gotDate != "2025-03-10" {
		t.Errorf("unexpected service args: %s %s %s", gotMerchant, gotStaff, gotDate)
	}

	var resp struct {
		Data []model.ResolvedSlot `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Time != "12:00" {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
}

func TestDaySlots_MissingDate(t *testing.T) {
	h := testHandler(&mockAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants/m1/staff/staff1/slots", nil)
	w := httptest.NewRecorder()

	h.DaySlots(w, req, slotParams())

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDaySlots_LedgerUnavailable(t *testing.T) {
	mock := &mockAvailabilityService{
		daySlotsFunc: func(ctx context.Context, merchantID, staffID, date string) ([]model.ResolvedSlot, error) {
			return nil, apperrors.AvailabilityUnknown(context.DeadlineExceeded)
		},
	}
	h := testHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants/m1/staff/staff1/slots?date=2025-03-10", nil)
	w := httptest.NewRecorder()

	h.DaySlots(w, req, slotParams())

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != apperrors.CodeAvailabilityUnknown {
		t.Errorf("expected code %s, got %s", apperrors.CodeAvailabilityUnknown, resp.Code)
	}
}

func TestBookableDates_OK(t *testing.T) {
	mock := &mockAvailabilityService{
		bookableDatesFunc: func(ctx context.Context, merchantID, staffID, from, to string) ([]string, error) {
			return []string{"2025-03-10", "2025-03-12"}, nil
		},
	}
	h := testHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants/m1/staff/staff1/bookable-dates?from=2025-03-10&to=2025-03-16", nil)
	w := httptest.NewRecorder()

	h.BookableDates(w, req, slotParams())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 dates, got %v", resp.Data)
	}
}

func TestBookableDates_MissingRange(t *testing.T) {
	h := testHandler(&mockAvailabilityService{})

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing both", query: ""},
		{name: "missing to", query: "?from=2025-03-10"},
		{name: "missing from", query: "?to=2025-03-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants/m1/staff/staff1/bookable-dates"+tt.query, nil)
			w := httptest.NewRecorder()

			h.BookableDates(w, req, slotParams())

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}
