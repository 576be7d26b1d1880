package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"microblog-backend/internal/domains/comment"
	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/shared/middleware"
	"microblog-backend/internal/shared/response"
)

type Handler struct {
	service comment.Service
}

func NewHandler(service comment.Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /posts/:id/comment and redirects back to the post on
// success.
func (h *Handler) Create(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	userID := middleware.UserID(c)
	if _, err := h.service.Create(c.Request.Context(), postID, userID, req); err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, post.ErrPostNotFound):
			response.NotFound(c, "post not found")
		default:
			response.InternalServerError(c, "failed to add comment")
		}
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+postID.String())
}
