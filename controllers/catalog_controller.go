package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/catalog"
	"storefront/models"
	"storefront/services"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// @Summary Get all categories
// @Description Get list of all categories in catalog order
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CatalogController) GetAllCategories(c *gin.Context) {
	respondOK(c, "Categories retrieved", ctrl.catalog.GetAllCategories())
}

// @Summary Get category by slug
// @Description Get a category and its products
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug} [get]
func (ctrl *CatalogController) GetCategory(c *gin.Context) {
	detail, err := ctrl.catalog.GetCategory(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Category retrieved", detail)
}

// @Summary Filter products
// @Description Filter products by category, flag, price range and name, then sort
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param flag query string false "Product flag" Enums(new, restocked, sold-out)
// @Param search query string false "Search by product name"
// @Param min_price query int false "Minimum price"
// @Param max_price query int false "Maximum price"
// @Param sort query string false "Sort order" Enums(newest, price-asc, price-desc, name)
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *CatalogController) GetProducts(c *gin.Context) {
	var q models.ProductFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, "Invalid query parameters", err)
		return
	}

	products, key, err := ctrl.catalog.FilterProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta:    models.ListMeta{Total: len(products), Sort: key.String()},
	})
}

// @Summary Get featured products
// @Description Get the first products in catalog order
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} models.Response
// @Router /products/featured [get]
func (ctrl *CatalogController) GetFeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultFeaturedLimit)))
	respondOK(c, "Featured products retrieved", ctrl.catalog.GetFeatured(limit))
}

// @Summary Get new arrivals
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/new [get]
func (ctrl *CatalogController) GetNewProducts(c *gin.Context) {
	respondOK(c, "New products retrieved", ctrl.catalog.GetByFlag(catalog.FlagNew))
}

// @Summary Get restocked products
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/restocked [get]
func (ctrl *CatalogController) GetRestockedProducts(c *gin.Context) {
	respondOK(c, "Restocked products retrieved", ctrl.catalog.GetByFlag(catalog.FlagRestocked))
}

// @Summary Get product by ID
// @Description Get product details with complete-the-look and related products
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *CatalogController) GetProductByID(c *gin.Context) {
	detail, err := ctrl.catalog.GetProductDetail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Product retrieved", detail)
}
