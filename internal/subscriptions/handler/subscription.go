package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Andrics/Beyond-Earth/internal/subscriptions/service"
	httputil "github.com/Andrics/Beyond-Earth/pkg/http"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

type checkoutRequest struct {
	Plan string `json:"plan"`
}

type activateRequest struct {
	SessionID string `json:"session_id"`
}

type subscribeRequest struct {
	Plan string `json:"plan"`
}

func (h *SubscriptionHandler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Checkout", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	session, err := h.service.Checkout(r.Context(), userID, req.Plan)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Checkout", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, session); err != nil {
		h.log.Error("failed to write created response", "handler", "Checkout", "operation", "WriteCreated", "error", err)
	}
}

func (h *SubscriptionHandler) Activate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Activate", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	sub, err := h.service.Activate(r.Context(), userID, req.SessionID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Activate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sub); err != nil {
		h.log.Error("failed to write success response", "handler", "Activate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Subscribe", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	sub, err := h.service.Subscribe(r.Context(), userID, req.Plan)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Subscribe", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, sub); err != nil {
		h.log.Error("failed to write created response", "handler", "Subscribe", "operation", "WriteCreated", "error", err)
	}
}

func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())

	sub, err := h.service.Status(r.Context(), userID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Status", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sub); err != nil {
		h.log.Error("failed to write success response", "handler", "Status", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.service.Cancel(r.Context(), userID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SubscriptionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/subscriptions/checkout", h.Checkout)
	router.POST("/api/v1/subscriptions/activate", h.Activate)
	router.POST("/api/v1/subscriptions", h.Subscribe)
	router.GET("/api/v1/subscriptions/status", h.Status)
	router.DELETE("/api/v1/subscriptions", h.Cancel)
}
