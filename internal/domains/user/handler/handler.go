package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/shared/middleware"
	"microblog-backend/internal/shared/response"
)

type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, user.ErrUsernameAlreadyExists):
			response.Conflict(c, "username already taken")
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.Conflict(c, "email already registered")
		default:
			response.InternalServerError(c, "failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, "invalid email or password")
		default:
			response.InternalServerError(c, "failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// LoginEntry handles GET /api/v1/auth/login, the target of the
// unauthenticated redirect. It tells API clients to authenticate and echoes
// the destination they were heading to.
func (h *Handler) LoginEntry(c *gin.Context) {
	next := c.Query("next")
	response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED",
		"authentication required", gin.H{"next": next})
}

// DeleteMe handles DELETE /api/v1/users/me. Removes the account and
// everything it owns.
func (h *Handler) DeleteMe(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
