package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-inventory-backend/internal/domains/catalog/service"
	"car-inventory-backend/internal/shared/response"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListMakes returns all car makes
// GET /car-makes
func (h *Handler) ListMakes(c *gin.Context) {
	makes, err := h.svc.ListMakes(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list car makes")
		return
	}

	response.Success(c, http.StatusOK, makes)
}

// ListModels returns all car models
// GET /car-models
func (h *Handler) ListModels(c *gin.Context) {
	models, err := h.svc.ListModels(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list car models")
		return
	}

	response.Success(c, http.StatusOK, models)
}

// ListFeatures returns all car features
// GET /car-features
func (h *Handler) ListFeatures(c *gin.Context) {
	features, err := h.svc.ListFeatures(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list car features")
		return
	}

	response.Success(c, http.StatusOK, features)
}
