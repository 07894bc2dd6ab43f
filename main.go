package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"storefront/app"
	"storefront/config"
	_ "storefront/docs"
)

// @title Storefront API
// @version 1.0
// @description Catalog browsing, guest shopping cart and virtual try-on.
// @host localhost:8082
// @BasePath /
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	application, err := app.Initialize(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := application.Router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
