package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"storefront/app"
	"storefront/config"
	_ "storefront/docs"
	"storefront/models"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		config.LoadConfig()
		application, initErr = app.Initialize(context.Background())
		if initErr != nil {
			log.Printf("Failed to initialize application: %v", initErr)
		}
	})
}

// Handler is the serverless entry point. Carts live as long as the warm
// instance does.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
			Error:   initErr.Error(),
		})
		return
	}
	application.Router.ServeHTTP(w, r)
}
