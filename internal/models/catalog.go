package models

type Brand struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Logo *string `json:"logo"`
}

type Category struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	CategoryType string  `json:"category_type"`
	Description  string  `json:"description"`
	Image        *string `json:"image"`
}

type ProductVariant struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Storage         string `json:"storage"`
	Color           string `json:"color"`
	RAM             string `json:"ram"`
	PriceAdjustment Price  `json:"price_adjustment"`
	Price           Price  `json:"price"`
	OriginalPrice   Price  `json:"original_price,omitempty"`
	Stock           int    `json:"stock"`
	SKU             string `json:"sku"`
	FinalPrice      Price  `json:"final_price"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

type Review struct {
	ID        int    `json:"id"`
	User      string `json:"user"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type Product struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Brand            *Brand           `json:"brand"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description,omitempty"`
	Specifications   string           `json:"specifications"`
	Price            Price            `json:"price"`
	OriginalPrice    Price            `json:"original_price,omitempty"`
	SalePrice        *Price           `json:"sale_price"`
	CurrentPrice     Price            `json:"current_price"`
	Category         *Category        `json:"category"`
	ProductType      string           `json:"product_type"`
	Image            string           `json:"image"`
	Images           []ProductImage   `json:"images"`
	Variants         []ProductVariant `json:"variants"`
	Stock            int              `json:"stock"`
	InStock          bool             `json:"in_stock"`
	IsFeatured       bool             `json:"is_featured"`
	IsUniqueVariant  bool             `json:"is_unique_variant"`
	Reviews          []Review         `json:"reviews"`
	AverageRating    *float64         `json:"average_rating"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// Variant returns the variant with the given id, if the product carries it.
func (p Product) Variant(id int) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}
