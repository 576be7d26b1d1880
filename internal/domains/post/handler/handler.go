package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"microblog-backend/internal/domains/comment"
	"microblog-backend/internal/domains/group"
	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/shared/middleware"
	"microblog-backend/internal/shared/pagination"
	"microblog-backend/internal/shared/response"
)

// maxImageSize caps post image uploads at 10 MiB.
const maxImageSize = 10 << 20

type Handler struct {
	service  post.Service
	comments comment.Service
	groups   group.Service
}

func NewHandler(service post.Service, comments comment.Service, groups group.Service) *Handler {
	return &Handler{service: service, comments: comments, groups: groups}
}

// Index handles GET /, the global feed.
func (h *Handler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))

	feed, err := h.service.IndexFeed(c.Request.Context(), page)
	if err != nil {
		response.InternalServerError(c, "failed to load feed")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, feed.Posts, feedMeta(feed.Meta))
}

// GroupFeed handles GET /group/:slug.
func (h *Handler) GroupFeed(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))

	feed, err := h.service.GroupFeed(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(c, "group not found")
			return
		}
		response.InternalServerError(c, "failed to load group feed")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"group": feed.Group,
		"posts": feed.Posts,
	}, feedMeta(feed.Meta))
}

// ProfileFeed handles GET /profile/:username. The following flag reflects
// the viewer when one is authenticated.
func (h *Handler) ProfileFeed(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	viewerID := middleware.UserID(c)

	profile, err := h.service.ProfileFeed(c.Request.Context(), c.Param("username"), viewerID, page)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"author":     profile.Author,
		"post_count": profile.PostCount,
		"following":  profile.Following,
		"posts":      profile.Posts,
	}, feedMeta(profile.Meta))
}

// FollowFeed handles GET /follow, the personalized feed of followed authors.
func (h *Handler) FollowFeed(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	userID := middleware.UserID(c)

	feed, err := h.service.FollowFeed(c.Request.Context(), userID, page)
	if err != nil {
		response.InternalServerError(c, "failed to load follow feed")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, feed.Posts, feedMeta(feed.Meta))
}

// Detail handles GET /posts/:id. The post is shown together with its
// comments and the author's total post count.
func (h *Handler) Detail(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		response.InternalServerError(c, "failed to load post")
		return
	}

	comments, err := h.comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		response.InternalServerError(c, "failed to load comments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"post":              detail.Post,
		"author_post_count": detail.AuthorPostCount,
		"comments":          comments,
	})
}

// NewForm handles GET /create: the data a client needs to render the
// creation form, currently the group choices.
func (h *Handler) NewForm(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to load groups")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

// Create handles POST /create. Accepts multipart form data with an optional
// image and redirects to the author's profile on success.
func (h *Handler) Create(c *gin.Context) {
	var req post.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if !bindFormGroupID(c, &req.GroupID) {
		response.BadRequest(c, "invalid group id")
		return
	}

	image, err := readImage(c)
	if err != nil {
		response.BadRequest(c, "invalid image upload")
		return
	}

	userID := middleware.UserID(c)
	if _, err := h.service.Create(c.Request.Context(), userID, req, image); err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, post.ErrInvalidGroup):
			response.BadRequest(c, "unknown group")
		case errors.Is(err, post.ErrInvalidImageType):
			response.BadRequest(c, "image must be jpeg, png or gif")
		default:
			response.InternalServerError(c, "failed to create post")
		}
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+middleware.Username(c))
}

// EditForm handles GET /posts/:id/edit. Only the author may load the form;
// anyone else is sent to the post detail page.
func (h *Handler) EditForm(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		response.InternalServerError(c, "failed to load post")
		return
	}

	if detail.Post.Author.ID != middleware.UserID(c) {
		c.Redirect(http.StatusFound, "/posts/"+postID.String())
		return
	}

	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to load groups")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"post":   detail.Post,
		"groups": groups,
	})
}

// Edit handles POST /posts/:id/edit. A non-author is redirected to the
// detail page and the post is left unchanged.
func (h *Handler) Edit(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if !bindFormGroupID(c, &req.GroupID) {
		response.BadRequest(c, "invalid group id")
		return
	}

	if _, err := h.service.Update(c.Request.Context(), postID, middleware.UserID(c), req); err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, post.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, post.ErrNotPostAuthor):
			c.Redirect(http.StatusFound, "/posts/"+postID.String())
		case errors.Is(err, post.ErrInvalidGroup):
			response.BadRequest(c, "unknown group")
		default:
			response.InternalServerError(c, "failed to update post")
		}
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+postID.String())
}

// Delete handles DELETE /posts/:id. Author-only.
func (h *Handler) Delete(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID, middleware.UserID(c)); err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, post.ErrNotPostAuthor):
			response.Forbidden(c, "only the author may delete a post")
		default:
			response.InternalServerError(c, "failed to delete post")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// bindFormGroupID fills the group reference from the group_id form field,
// which gin's form binding cannot map onto a *uuid.UUID. JSON requests bind
// the field directly and leave the form empty. Returns false on a malformed
// value.
func bindFormGroupID(c *gin.Context, dest **uuid.UUID) bool {
	raw := c.PostForm("group_id")
	if raw == "" {
		return true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return false
	}
	*dest = &id
	return true
}

func readImage(c *gin.Context) (*post.ImageUpload, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if file.Size > maxImageSize {
		return nil, errors.New("image too large")
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &post.ImageUpload{
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func feedMeta(m post.FeedMeta) *response.Meta {
	return &response.Meta{
		Page:       m.Page,
		Limit:      m.Limit,
		Total:      m.Total,
		TotalPages: m.TotalPages,
		HasNext:    m.HasNext,
		HasPrev:    m.HasPrev,
	}
}
