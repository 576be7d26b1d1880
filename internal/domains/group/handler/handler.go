package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"microblog-backend/internal/domains/group"
	"microblog-backend/internal/shared/response"
)

type Handler struct {
	service group.Service
}

func NewHandler(service group.Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/v1/groups.
func (h *Handler) Create(c *gin.Context) {
	var req group.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, group.ErrSlugAlreadyExists):
			response.Conflict(c, "slug already taken")
		default:
			response.InternalServerError(c, "failed to create group")
		}
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// List handles GET /api/v1/groups.
func (h *Handler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list groups")
		return
	}
	response.Success(c, http.StatusOK, groups)
}

// Delete handles DELETE /api/v1/groups/:slug. The group's posts survive
// with their group reference cleared.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(c, "group not found")
			return
		}
		response.InternalServerError(c, "failed to delete group")
		return
	}
	c.Status(http.StatusNoContent)
}
