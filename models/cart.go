package models

// CartLine references its product; the product is shared with the catalog
// and never copied.
type CartLine struct {
	Product  *Product `json:"product"`
	Size     string   `json:"size"`
	Quantity int      `json:"quantity"`
}

func (l CartLine) Subtotal() int {
	return l.Product.Price * l.Quantity
}

type CartSummary struct {
	Lines      []CartLine `json:"items"`
	IsOpen     bool       `json:"is_open"`
	TotalItems int        `json:"total_items"`
	TotalPrice int        `json:"total_price"`
}
