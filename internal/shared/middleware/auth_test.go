package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/pkg/jwt"
)

func newTestRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/create", RequireAuth(manager), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})
	r.GET("/profile", OptionalAuth(manager), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})
	return r
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, time.Hour)
	r := newTestRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/create?page=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/v1/auth/login?next=%2Fcreate%3Fpage%3D2", w.Header().Get("Location"))
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, time.Hour)
	r := newTestRouter(manager)

	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID.String(), "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, time.Hour)
	r := newTestRouter(manager)

	token, err := manager.GenerateRefreshToken(uuid.New().String())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestOptionalAuthStaysAnonymous(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, time.Hour)
	r := newTestRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uuid.Nil.String(), w.Body.String())
}
