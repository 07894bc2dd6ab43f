package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/services"
	"storefront/utils"
)

type TryOnController struct {
	tryOn         *services.TryOnService
	maxUploadSize int64
}

func NewTryOnController(tryOn *services.TryOnService, maxUploadSize int64) *TryOnController {
	return &TryOnController{tryOn: tryOn, maxUploadSize: maxUploadSize}
}

// @Summary Virtual try-on
// @Description Render the shopper wearing a product from a selfie and a full-body photo
// @Tags Try-On
// @Accept multipart/form-data
// @Produce json
// @Param product_id formData string true "Product ID"
// @Param selfie formData file true "Close-up selfie"
// @Param full_body formData file true "Full-body photo"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /try-on [post]
func (ctrl *TryOnController) TryOn(c *gin.Context) {
	productID := strings.TrimSpace(c.PostForm("product_id"))
	if productID == "" {
		respondBadRequest(c, "product_id is required", nil)
		return
	}

	selfieHeader, err := c.FormFile("selfie")
	if err != nil {
		respondBadRequest(c, "selfie image is required", err)
		return
	}
	fullBodyHeader, err := c.FormFile("full_body")
	if err != nil {
		respondBadRequest(c, "full_body image is required", err)
		return
	}

	selfie, err := utils.ReadImageFile(selfieHeader, ctrl.maxUploadSize)
	if err != nil {
		respondError(c, err)
		return
	}
	fullBody, err := utils.ReadImageFile(fullBodyHeader, ctrl.maxUploadSize)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := ctrl.tryOn.Generate(c.Request.Context(), productID, selfie, fullBody)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Try-on generated", result)
}
