package models

const (
	ItemTypeProduct         = "product"
	ItemTypeEducationTablet = "education_tablet"
)

// Cart is the server's view of the current cart. ItemCount and Total come from
// the backend and are never recomputed locally.
type Cart struct {
	ID        int        `json:"id"`
	CartID    string     `json:"cart_id"`
	Items     []CartItem `json:"items"`
	Total     Price      `json:"total"`
	ItemCount int        `json:"item_count"`
}

type CartItem struct {
	ID              int              `json:"id"`
	ProductID       *int             `json:"product_id,omitempty"`
	Product         *Product         `json:"product"`
	Variant         *ProductVariant  `json:"variant"`
	EducationTablet *EducationTablet `json:"education_tablet"`
	Quantity        int              `json:"quantity"`
	UnitPrice       Price            `json:"unit_price"`
	TotalPrice      Price            `json:"total_price"`
	ItemName        string           `json:"item_name"`
	ItemType        string           `json:"item_type"`
}

type AddCartItemRequest struct {
	ProductID int  `json:"product_id"`
	VariantID *int `json:"variant_id,omitempty"`
	Quantity  int  `json:"quantity"`
}

type AddEducationTabletRequest struct {
	TabletID int `json:"tablet_id"`
	Quantity int `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
