package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"car-inventory-backend/internal/domains/detail/model"
	"car-inventory-backend/internal/domains/detail/service"
	"car-inventory-backend/internal/shared/response"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// ==================== QUERIES ====================

// ListDetails runs the filtered/sorted/paged list query
// POST /car-details/search
func (h *Handler) ListDetails(c *gin.Context) {
	var req model.ListDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.svc.ListDetails(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := &response.Meta{Total: result.TotalCount}
	if req.Page != nil && req.PageSize != nil {
		meta.Page = *req.Page
		meta.Limit = *req.PageSize
	}
	response.SuccessWithMeta(c, http.StatusOK, result, meta)
}

// GetDetail fetches one car detail with its relations
// GET /car-details/:id
func (h *Handler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid car detail ID")
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// ==================== MUTATIONS ====================

// CreateDetail creates a car detail with an optional initial feature set
// POST /car-details
func (h *Handler) CreateDetail(c *gin.Context) {
	var req model.CreateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.svc.CreateDetail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, detail)
}

// UpdateDetail applies a partial update plus a full-replacement feature list
// PUT /car-details/:id
func (h *Handler) UpdateDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid car detail ID")
		return
	}

	var req model.UpdateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.svc.UpdateDetail(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// UpdateDetails updates multiple car details in one transaction
// PUT /car-details
func (h *Handler) UpdateDetails(c *gin.Context) {
	var req model.BatchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	details, err := h.svc.UpdateDetails(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// DeleteDetail removes one car detail
// DELETE /car-details/:id
func (h *Handler) DeleteDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid car detail ID")
		return
	}

	if err := h.svc.DeleteDetail(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DeleteDetails removes a batch of car details
// DELETE /car-details
func (h *Handler) DeleteDetails(c *gin.Context) {
	var req model.DeleteDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	count, err := h.svc.DeleteDetails(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deletedCount": count})
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var derr *model.DetailError
	if errors.As(err, &derr) {
		switch derr.Code {
		case model.ErrCodeDetailNotFound:
			response.ErrorResponse(c, http.StatusNotFound, derr.Code, derr.Message)
		case model.ErrCodeConstraintViolation:
			response.ErrorResponse(c, http.StatusConflict, derr.Code, derr.Message)
		case model.ErrCodeValidation:
			details := ""
			if derr.Err != nil {
				details = derr.Err.Error()
			}
			response.ErrorWithDetails(c, http.StatusBadRequest, derr.Code, derr.Message, details)
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, derr.Code, derr.Message)
		}
		return
	}

	response.InternalServerError(c, "Unexpected error")
}
