package handler

import (
	"net/http"

	"github.com/Andrics/Beyond-Earth/internal/activities/service"
	httputil "github.com/Andrics/Beyond-Earth/pkg/http"
	"github.com/Andrics/Beyond-Earth/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// ActivityHandler serves the public catalog. Its routes are mounted without
// authentication.
type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log,
	}
}

func (h *ActivityHandler) GetAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	activities, err := h.service.GetAvailable(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailable", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, activities); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailable", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ActivityHandler) GetByType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityType := ps.ByName("type")

	activity, err := h.service.GetByType(r.Context(), activityType)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByType", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, activity); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByType", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ActivityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/activities", h.GetAvailable)
	router.GET("/api/v1/activities/type/:type", h.GetByType)
}
