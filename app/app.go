package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/config"
	"storefront/controllers"
	"storefront/libs"
	"storefront/middleware"
	"storefront/models"
	"storefront/repositories"
	"storefront/routes"
	"storefront/services"
	"storefront/tryon"
)

const janitorInterval = 10 * time.Minute

type App struct {
	Router *gin.Engine
	carts  *services.CartService
}

// Initialize connects the backing stores, loads the catalog and builds the
// router. config.LoadConfig must have run.
func Initialize(ctx context.Context) (*App, error) {
	cfg := config.AppConfig

	if err := config.ConnectDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	models.InitRedis(ctx, models.RedisOptions{
		URL:      cfg.RedisURL,
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	index, err := repositories.NewCatalogRepository(config.DB).LoadIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Printf("Catalog ready: %d products", index.Len())

	catalogService := services.NewCatalogService(index, models.RedisClient, cfg.CatalogCacheTTL)
	catalogService.InvalidateCache(ctx)

	cartService := services.NewCartService(index, cfg.CartSessionTTL)
	cartService.StartJanitor(janitorInterval)

	ctrls := &routes.Controllers{
		Catalog: controllers.NewCatalogController(catalogService),
		Cart:    controllers.NewCartController(cartService),
	}

	if cfg.TryOnEndpoint != "" {
		var uploader services.ImageUploader
		cld, err := libs.NewCloudinaryService(cfg.CloudinaryURL, cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret)
		switch {
		case err == nil:
			uploader = cld
		case errors.Is(err, libs.ErrCloudinaryNotConfigured):
			log.Println("Cloudinary not configured, try-on results returned inline")
		default:
			log.Printf("Warning: cloudinary disabled: %v", err)
		}

		generator := tryon.NewHTTPGenerator(cfg.TryOnEndpoint, cfg.TryOnAPIKey, cfg.TryOnTimeout)
		tryOnService := services.NewTryOnService(index, generator, uploader)
		ctrls.TryOn = controllers.NewTryOnController(tryOnService, cfg.MaxUploadSize)
		log.Println("Try-on enabled")
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	routes.SetupRoutes(router, ctrls, routes.SessionConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.CartSessionTTL,
	})

	return &App{Router: router, carts: cartService}, nil
}

func (a *App) Close() {
	a.carts.Close()
	models.CloseRedis()
	config.CloseDB()
}
