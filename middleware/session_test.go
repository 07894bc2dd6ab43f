package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/utils"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CartSessionMiddleware("secret", time.Hour))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

func TestCartSession_IssuesNewSession(t *testing.T) {
	r := sessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(SessionHeader)
	require.NotEmpty(t, token)

	claims, err := utils.ValidateSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID, w.Body.String())
}

func TestCartSession_ReusesSession(t *testing.T) {
	r := sessionRouter()
	token, err := utils.GenerateSessionToken("secret", "abc", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
}

func TestCartSession_RejectsBadToken(t *testing.T) {
	r := sessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
