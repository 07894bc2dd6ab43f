package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/catalog"
	"storefront/controllers"
	_ "storefront/docs"
	"storefront/middleware"
	"storefront/services"
)

func testRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	idx, err := catalog.NewSeedIndex()
	require.NoError(t, err)

	carts := services.NewCartService(idx, time.Hour)
	t.Cleanup(carts.Close)

	r := gin.New()
	SetupRoutes(r, &Controllers{
		Catalog: controllers.NewCatalogController(services.NewCatalogService(idx, nil, time.Minute)),
		Cart:    controllers.NewCartController(carts),
	}, SessionConfig{Secret: "secret", TTL: time.Hour})
	return r
}

func TestSetupRoutes(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/categories", http.StatusOK},
		{http.MethodGet, "/products/featured", http.StatusOK},
		{http.MethodGet, "/products/1", http.StatusOK},
		{http.MethodGet, "/cart", http.StatusOK},
		{http.MethodPost, "/cart/toggle", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodPost, "/try-on", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSetupRoutes_CartIssuesSession(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.NotEmpty(t, w.Header().Get(middleware.SessionHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Empty(t, w.Header().Get(middleware.SessionHeader))
}
