package services

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductSoldOut   = errors.New("product is sold out")
	ErrInvalidFilter    = errors.New("invalid product filter")
	ErrInvalidImage     = errors.New("invalid image")
)
