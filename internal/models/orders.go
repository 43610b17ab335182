package models

type OrderItem struct {
	ID         int             `json:"id"`
	Product    Product         `json:"product"`
	Variant    *ProductVariant `json:"variant"`
	Quantity   int             `json:"quantity"`
	UnitPrice  Price           `json:"unit_price"`
	TotalPrice Price           `json:"total_price"`
}

type Order struct {
	ID             int         `json:"id"`
	OrderID        string      `json:"order_id"`
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Town           string      `json:"town"`
	Address        string      `json:"address"`
	Subtotal       Price       `json:"subtotal"`
	ShippingCost   Price       `json:"shipping_cost"`
	Total          Price       `json:"total"`
	Status         string      `json:"status"`
	PaymentStatus  string      `json:"payment_status"`
	TrackingNumber string      `json:"tracking_number"`
	Items          []OrderItem `json:"items"`
	CreatedAt      string      `json:"created_at"`
}

type OrderRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Town          string `json:"town"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
