package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Andrics/Beyond-Earth/internal/contact/service"
	httputil "github.com/Andrics/Beyond-Earth/pkg/http"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/middleware"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var message model.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Submit(r.Context(), &message); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, map[string]string{"reference": message.Reference}); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	callerID := middleware.UserIDFromContext(r.Context())
	messages, total, err := h.service.List(r.Context(), callerID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, messages, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

// RegisterRoutes mounts the authenticated listing route. The submission
// route is registered separately on the unauthenticated router.
func (h *ContactHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/contact", h.List)
}

// RegisterPublicRoutes mounts the routes served without authentication.
func (h *ContactHandler) RegisterPublicRoutes(router *httprouter.Router) {
	router.POST("/api/v1/contact", h.Submit)
}
