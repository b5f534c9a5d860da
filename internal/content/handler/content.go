package handler

import (
	"net/http"

	"github.com/Andrics/Beyond-Earth/internal/content/service"
	httputil "github.com/Andrics/Beyond-Earth/pkg/http"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type ContentHandler struct {
	service service.ContentService
	log     *logger.Logger
}

func NewContentHandler(service service.ContentService, log *logger.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		log:     log,
	}
}

func (h *ContentHandler) Public(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.PublicContent(r.Context())); err != nil {
		h.log.Error("failed to write success response", "handler", "Public", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ContentHandler) Premium(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())

	content, err := h.service.PremiumContent(r.Context(), userID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Premium", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, content); err != nil {
		h.log.Error("failed to write success response", "handler", "Premium", "operation", "WriteSuccess", "error", err)
	}
}

// RegisterRoutes mounts the premium route. The public route is registered
// separately on the unauthenticated router.
func (h *ContentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/content/premium", h.Premium)
}

// RegisterPublicRoutes mounts the routes served without authentication.
func (h *ContentHandler) RegisterPublicRoutes(router *httprouter.Router) {
	router.GET("/api/v1/content/public", h.Public)
}
