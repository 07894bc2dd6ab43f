package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	"storefront/middleware"
)

type Controllers struct {
	Catalog *controllers.CatalogController
	Cart    *controllers.CartController
	// TryOn is nil when no try-on service is configured.
	TryOn *controllers.TryOnController
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

func SetupRoutes(router *gin.Engine, ctrls *Controllers, session SessionConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/categories", ctrls.Catalog.GetAllCategories)
	router.GET("/categories/:slug", ctrls.Catalog.GetCategory)
	router.GET("/products", ctrls.Catalog.GetProducts)
	router.GET("/products/featured", ctrls.Catalog.GetFeaturedProducts)
	router.GET("/products/new", ctrls.Catalog.GetNewProducts)
	router.GET("/products/restocked", ctrls.Catalog.GetRestockedProducts)
	router.GET("/products/:id", ctrls.Catalog.GetProductByID)

	cart := router.Group("/cart")
	cart.Use(middleware.CartSessionMiddleware(session.Secret, session.TTL))
	{
		cart.GET("", ctrls.Cart.GetCart)
		cart.DELETE("", ctrls.Cart.ClearCart)
		cart.GET("/events", ctrls.Cart.StreamEvents)
		cart.POST("/items", ctrls.Cart.AddItem)
		cart.PATCH("/items/:productId/:size", ctrls.Cart.UpdateItem)
		cart.DELETE("/items/:productId/:size", ctrls.Cart.RemoveItem)
		cart.POST("/open", ctrls.Cart.OpenCart)
		cart.POST("/close", ctrls.Cart.CloseCart)
		cart.POST("/toggle", ctrls.Cart.ToggleCart)
	}

	if ctrls.TryOn != nil {
		router.POST("/try-on", ctrls.TryOn.TryOn)
	}
}
