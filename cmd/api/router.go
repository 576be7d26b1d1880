package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog-backend/pkg/container"

	"microblog-backend/internal/shared/middleware"
	"microblog-backend/internal/shared/response"
)

// NewRouter mounts the blog surface at the root and the account/group API
// under /api/v1.
func NewRouter(c *container.Container) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	requireAuth := middleware.RequireAuth(c.JWTManager)
	optionalAuth := middleware.OptionalAuth(c.JWTManager)

	// Blog surface. Reads are public; the viewer, when authenticated,
	// personalizes the profile's following flag.
	r.GET("/", c.PostHandler.Index)
	r.GET("/group/:slug", c.PostHandler.GroupFeed)
	r.GET("/profile/:username", optionalAuth, c.PostHandler.ProfileFeed)
	r.GET("/posts/:id", c.PostHandler.Detail)

	r.GET("/create", requireAuth, c.PostHandler.NewForm)
	r.POST("/create", requireAuth, c.PostHandler.Create)
	r.GET("/posts/:id/edit", requireAuth, c.PostHandler.EditForm)
	r.POST("/posts/:id/edit", requireAuth, c.PostHandler.Edit)
	r.DELETE("/posts/:id", requireAuth, c.PostHandler.Delete)
	r.POST("/posts/:id/comment", requireAuth, c.CommentHandler.Create)

	r.GET("/follow", requireAuth, c.PostHandler.FollowFeed)
	r.GET("/profile/:username/follow", requireAuth, c.FollowHandler.Follow)
	r.GET("/profile/:username/unfollow", requireAuth, c.FollowHandler.Unfollow)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", c.UserHandler.Register)
			auth.POST("/login", c.UserHandler.Login)
			auth.GET("/login", c.UserHandler.LoginEntry)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", c.GroupHandler.List)
			groups.POST("", requireAuth, c.GroupHandler.Create)
			groups.DELETE("/:slug", requireAuth, c.GroupHandler.Delete)
		}

		api.DELETE("/users/me", requireAuth, c.UserHandler.DeleteMe)
	}

	r.GET("/healthz", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}

		// A down redis only degrades the feed cache, so it does not fail
		// the health check.
		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status": "ok",
			"cache":  cacheStatus,
		})
	})

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return r
}
