package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/progress-tracker-api/internal/auth"
	"github.com/yukikurage/progress-tracker-api/internal/constants"
	"github.com/yukikurage/progress-tracker-api/internal/models"
)

func newTestRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	r.GET("/login-as/:id", func(c *gin.Context) {
		token, _ := tokens.Issue(&models.User{ID: c.Param("id"), Username: "u", Role: models.RoleUser})
		session := sessions.Default(c)
		session.Set(constants.SessionKeyToken, token)
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})

	api := r.Group("/api", RequireAuth(tokens))
	api.GET("/me", func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": GetRole(c)})
	})
	api.DELETE("/things/:id", RequireRole(constants.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth_Bearer(t *testing.T) {
	tokens := auth.NewTokenManager("secret")
	r := newTestRouter(tokens)

	token, err := tokens.Issue(&models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u-1", body["id"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireAuth_MissingOrInvalidToken(t *testing.T) {
	r := newTestRouter(auth.NewTokenManager("secret"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_SessionFallback(t *testing.T) {
	r := newTestRouter(auth.NewTokenManager("secret"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login-as/u-7", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-7")
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("secret")
	r := newTestRouter(tokens)

	userToken, err := tokens.Issue(&models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)
	adminToken, err := tokens.Issue(&models.User{ID: "u-2", Role: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/things/1", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/things/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetUserID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)
}
