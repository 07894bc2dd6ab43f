package models

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Product is immutable once loaded into the catalog. Optional fields are
// pointers so an absent value is distinguishable from an empty one.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           int      `json:"price"`
	Category        string   `json:"category"`
	Subcategory     *string  `json:"subcategory,omitempty"`
	Color           string   `json:"color"`
	ColorHex        string   `json:"color_hex"`
	Sizes           []string `json:"sizes"`
	Images          []string `json:"images"`
	Description     string   `json:"description"`
	Material        *string  `json:"material,omitempty"`
	ModelInfo       *string  `json:"model_info,omitempty"`
	CompleteTheLook []string `json:"complete_the_look,omitempty"`
	IsNew           *bool    `json:"is_new,omitempty"`
	IsRestocked     *bool    `json:"is_restocked,omitempty"`
	IsSoldOut       *bool    `json:"is_sold_out,omitempty"`
}

func (p *Product) New() bool {
	return p.IsNew != nil && *p.IsNew
}

func (p *Product) Restocked() bool {
	return p.IsRestocked != nil && *p.IsRestocked
}

func (p *Product) SoldOut() bool {
	return p.IsSoldOut != nil && *p.IsSoldOut
}

func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type ProductDetail struct {
	Product         *Product   `json:"product"`
	CompleteTheLook []*Product `json:"complete_the_look"`
	Related         []*Product `json:"related"`
}

type CategoryDetail struct {
	Category Category   `json:"category"`
	Products []*Product `json:"products"`
}
