package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"lacque/internal/availability/service"
	httputil "lacque/pkg/http"
	"lacque/pkg/logger"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) DaySlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	merchantID := ps.ByName("merchantId")
	staffID := ps.ByName("staffId")
	date := r.URL.Query().Get("date")

	if date == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "date query parameter is required",
		})
		return
	}

	slots, err := h.service.DaySlots(r.Context(), merchantID, staffID, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slots)
}

func (h *AvailabilityHandler) BookableDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	merchantID := ps.ByName("merchantId")
	staffID := ps.ByName("staffId")

	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	if from == "" || to == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "from and to query parameters are required",
		})
		return
	}

	dates, err := h.service.BookableDates(r.Context(), merchantID, staffID, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, dates)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/merchants/:merchantId/staff/:staffId/slots", h.DaySlots)
	router.GET("/api/v1/merchants/:merchantId/staff/:staffId/bookable-dates", h.BookableDates)
}
