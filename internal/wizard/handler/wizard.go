package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"lacque/internal/wizard/service"
	httputil "lacque/pkg/http"
	"lacque/pkg/logger"
	"lacque/pkg/model"
)

type WizardHandler struct {
	service service.WizardService
	log     *logger.Logger
}

func NewWizardHandler(service service.WizardService, log *logger.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log,
	}
}

func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		MerchantID string `json:"merchant_id"`
		StaffID    string `json:"staff_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	sess, err := h.service.Start(r.Context(), body.MerchantID, body.StaffID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, sess)
}

func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) SelectDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	sess, err := h.service.SelectDate(r.Context(), ps.ByName("id"), body.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) SelectTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	sess, err := h.service.SelectTime(r.Context(), ps.ByName("id"), body.Time)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) AddService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		ServiceID string `json:"service_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	sess, err := h.service.AddService(r.Context(), ps.ByName("id"), body.ServiceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) RemoveService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.RemoveService(r.Context(), ps.ByName("id"), ps.ByName("serviceId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) ConfirmServices(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.ConfirmServices(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) SetContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	sess, err := h.service.SetContact(r.Context(), ps.ByName("id"), contact)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.Submit(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	sess, err := h.service.Back(r.Context(), ps.ByName("id"), service.State(body.Target))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) Recover(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.Recover(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sess)
}

func (h *WizardHandler) Abandon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Abandon(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *WizardHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/wizard/sessions", h.Start)
	router.GET("/api/v1/wizard/sessions/:id", h.Get)
	router.DELETE("/api/v1/wizard/sessions/:id", h.Abandon)

	router.POST("/api/v1/wizard/sessions/:id/date", h.SelectDate)
	router.POST("/api/v1/wizard/sessions/:id/time", h.SelectTime)
	router.POST("/api/v1/wizard/sessions/:id/services", h.AddService)
	router.DELETE("/api/v1/wizard/sessions/:id/services/:serviceId", h.RemoveService)
	router.POST("/api/v1/wizard/sessions/:id/services/confirm", h.ConfirmServices)
	router.POST("/api/v1/wizard/sessions/:id/contact", h.SetContact)
	router.POST("/api/v1/wizard/sessions/:id/submit", h.Submit)
	router.POST("/api/v1/wizard/sessions/:id/back", h.Back)
	router.POST("/api/v1/wizard/sessions/:id/recover", h.Recover)
}
