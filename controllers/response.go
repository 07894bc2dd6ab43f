package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/cart"
	"storefront/models"
	"storefront/services"
	"storefront/tryon"
	"storefront/utils"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message, Data: data})
}

// respondError maps domain errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		status, message = http.StatusNotFound, "Product not found"
	case errors.Is(err, services.ErrCategoryNotFound):
		status, message = http.StatusNotFound, "Category not found"
	case errors.Is(err, services.ErrProductSoldOut):
		status, message = http.StatusConflict, "Product is sold out"
	case errors.Is(err, services.ErrInvalidFilter):
		status, message = http.StatusBadRequest, "Invalid product filter"
	case errors.Is(err, cart.ErrInvalidSize):
		status, message = http.StatusBadRequest, "Selected size is not available for this product"
	case errors.Is(err, utils.ErrFileTooLarge), errors.Is(err, utils.ErrInvalidImageType), errors.Is(err, services.ErrInvalidImage):
		status, message = http.StatusBadRequest, "Invalid image upload"
	case errors.Is(err, tryon.ErrCapacityExceeded):
		status, message = http.StatusTooManyRequests, "Try-on is at capacity. Please wait about 60 seconds and try again"
	case errors.Is(err, tryon.ErrGeneration):
		status, message = http.StatusBadGateway, "Failed to generate try-on result"
	}

	if status == http.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	c.JSON(status, models.ErrorResponse{Success: false, Message: message, Error: err.Error()})
}

func respondBadRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
