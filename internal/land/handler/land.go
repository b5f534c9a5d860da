package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Andrics/Beyond-Earth/internal/land/service"
	httputil "github.com/Andrics/Beyond-Earth/pkg/http"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/middleware"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type LandHandler struct {
	service service.LandService
	log     *logger.Logger
}

func NewLandHandler(service service.LandService, log *logger.Logger) *LandHandler {
	return &LandHandler{
		service: service,
		log:     log,
	}
}

func (h *LandHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.LandPurchaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	purchase, err := h.service.Create(r.Context(), userID, &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, purchase); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *LandHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	userID := middleware.UserIDFromContext(r.Context())

	purchase, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, purchase); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LandHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	purchases, total, err := h.service.GetAll(r.Context(), userID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, purchases, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *LandHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/land", h.Create)
	router.GET("/api/v1/land", h.GetAll)
	router.GET("/api/v1/land/id/:id", h.GetByID)
}
