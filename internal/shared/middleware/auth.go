package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"microblog-backend/pkg/jwt"
)

const (
	// ContextUserID is the gin context key holding the authenticated caller's ID.
	ContextUserID = "userID"
	// ContextUsername is the gin context key holding the authenticated caller's username.
	ContextUsername = "username"

	loginPath = "/api/v1/auth/login"
)

// RequireAuth resolves the caller's identity from a Bearer token. An
// unauthenticated request is redirected to the login entry point with the
// intended destination preserved in the `next` query parameter.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := resolveIdentity(c, manager)
		if !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(302, loginPath+"?next="+next)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, username)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// and stays silent otherwise. Used on public pages that adapt to the viewer,
// like the profile's "following" flag.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, username, ok := resolveIdentity(c, manager); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextUsername, username)
		}
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, manager *jwt.Manager) (uuid.UUID, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return uuid.Nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, "", false
	}

	claims, err := manager.ValidateToken(parts[1])
	if err != nil || claims.Type != "access" {
		return uuid.Nil, "", false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", false
	}

	return userID, claims.Username, true
}

// UserID returns the authenticated caller's ID, or uuid.Nil when the request
// is anonymous.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// Username returns the authenticated caller's username, or "" when anonymous.
func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}
