package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"lacque/internal/operator/feed"
	httputil "lacque/pkg/http"
	"lacque/pkg/logger"
)

type ActivityHandler struct {
	feed *feed.ActivityFeed
	log  *logger.Logger
}

func NewActivityHandler(activityFeed *feed.ActivityFeed, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		feed: activityFeed,
		log:  log,
	}
}

func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "invalid limit parameter: " + s,
			})
			return
		}
		limit = v
	}

	httputil.WriteSuccess(w, h.feed.Recent(limit))
}

func (h *ActivityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/activity", h.Recent)
}
