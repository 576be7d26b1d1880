package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog-backend/internal/domains/follow"
	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/shared/middleware"
	"microblog-backend/internal/shared/response"
)

type Handler struct {
	service follow.Service
}

func NewHandler(service follow.Service) *Handler {
	return &Handler{service: service}
}

// Follow handles GET /profile/:username/follow. Idempotent; self-follows
// are quietly ignored. Redirects back to the profile either way.
func (h *Handler) Follow(c *gin.Context) {
	username := c.Param("username")

	if err := h.service.Follow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to follow")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Unfollow handles GET /profile/:username/unfollow. Removing a follow that
// does not exist is a no-op.
func (h *Handler) Unfollow(c *gin.Context) {
	username := c.Param("username")

	if err := h.service.Unfollow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to unfollow")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}
