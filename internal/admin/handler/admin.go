package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Andrics/Beyond-Earth/internal/admin/service"
	httputil "github.com/Andrics/Beyond-Earth/pkg/http"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/middleware"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AdminHandler struct {
	service service.AdminService
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListUsers", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	callerID := middleware.UserIDFromContext(r.Context())
	users, total, err := h.service.ListUsers(r.Context(), callerID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListUsers", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, users, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListUsers", "operation", "WritePaginated", "error", err)
	}
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	callerID := middleware.UserIDFromContext(r.Context())

	user, err := h.service.GetUser(r.Context(), callerID, ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetUser", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetUser", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateUser", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	callerID := middleware.UserIDFromContext(r.Context())
	if err := h.service.UpdateUser(r.Context(), callerID, ps.ByName("id"), &update); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateUser", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	callerID := middleware.UserIDFromContext(r.Context())

	if err := h.service.DeleteUser(r.Context(), callerID, ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteUser", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	callerID := middleware.UserIDFromContext(r.Context())
	bookings, total, err := h.service.ListBookings(r.Context(), callerID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListBookings", "operation", "WritePaginated", "error", err)
	}
}

func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	callerID := middleware.UserIDFromContext(r.Context())

	booking, err := h.service.GetBooking(r.Context(), callerID, ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBooking", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateBookingStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	callerID := middleware.UserIDFromContext(r.Context())
	if err := h.service.UpdateBookingStatus(r.Context(), callerID, ps.ByName("id"), req.Status); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateBookingStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	callerID := middleware.UserIDFromContext(r.Context())

	if err := h.service.DeleteBooking(r.Context(), callerID, ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/admin/users", h.ListUsers)
	router.GET("/api/v1/admin/users/id/:id", h.GetUser)
	router.PATCH("/api/v1/admin/users/id/:id", h.UpdateUser)
	router.DELETE("/api/v1/admin/users/id/:id", h.DeleteUser)

	router.GET("/api/v1/admin/bookings", h.ListBookings)
	router.GET("/api/v1/admin/bookings/id/:id", h.GetBooking)
	router.PATCH("/api/v1/admin/bookings/id/:id/status", h.UpdateBookingStatus)
	router.DELETE("/api/v1/admin/bookings/id/:id", h.DeleteBooking)
}
