package models

type AddCartItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" binding:"required"`
	Size      string `json:"size" form:"size" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" form:"quantity" binding:"required"`
}

type ProductFilterQuery struct {
	Category string `form:"category"`
	Flag     string `form:"flag"`
	Search   string `form:"search"`
	MinPrice int    `form:"min_price"`
	MaxPrice int    `form:"max_price"`
	Sort     string `form:"sort"`
}

type TryOnResponse struct {
	ProductID string `json:"product_id"`
	MimeType  string `json:"mime_type"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageData string `json:"image_data,omitempty"`
}
