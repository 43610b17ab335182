package models

const (
	ApplicationIndividual = "individual"
	ApplicationSalaried   = "salaried"
)

type FinancingPlan struct {
	ID           int   `json:"id"`
	Months       int   `json:"months"`
	InterestRate Price `json:"interest_rate"`
	IsActive     bool  `json:"is_active"`
}

type FinancingApplication struct {
	ID              int             `json:"id"`
	ApplicationID   string          `json:"application_id"`
	ApplicationType string          `json:"application_type"`
	Product         Product         `json:"product"`
	Variant         *ProductVariant `json:"variant"`
	FinancingPlan   FinancingPlan   `json:"financing_plan"`
	FullName        string          `json:"full_name"`
	Status          string          `json:"status"`
	ApprovedAmount  *Price          `json:"approved_amount"`
	MonthlyPayment  *Price          `json:"monthly_payment"`
	CreatedAt       string          `json:"created_at"`
}

type FinancingApplicationRequest struct {
	ApplicationType string `json:"application_type"`
	ProductID       int    `json:"product_id"`
	VariantID       *int   `json:"variant_id,omitempty"`
	FinancingPlanID int    `json:"financing_plan_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	IDNumber        string `json:"id_number,omitempty"`
	EmployerID      *int   `json:"employer_id,omitempty"`
	StaffNumber     string `json:"staff_number,omitempty"`
	BusinessName    string `json:"business_name,omitempty"`
}

type Employer struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Code *string `json:"code"`
}

type EnterpriseBundle struct {
	ID              int      `json:"id"`
	Product         Product  `json:"product"`
	Name            string   `json:"name"`
	DataGB          int      `json:"data_gb"`
	Minutes         int      `json:"minutes"`
	SMS             int      `json:"sms"`
	MinimumQuantity int      `json:"minimum_quantity"`
	PricePerDevice  Price    `json:"price_per_device"`
	AdditionalPerks []string `json:"additional_perks"`
	IsActive        bool     `json:"is_active"`
}

type EnterpriseOrder struct {
	ID             int              `json:"id"`
	OrderID        string           `json:"order_id"`
	Bundle         EnterpriseBundle `json:"bundle"`
	Quantity       int              `json:"quantity"`
	CompanyName    string           `json:"company_name"`
	Status         string           `json:"status"`
	ApprovedAmount *Price           `json:"approved_amount"`
	TotalAmount    Price            `json:"total_amount"`
	LeadTimeDays   int              `json:"lead_time_days"`
	CreatedAt      string           `json:"created_at"`
}

type EnterpriseOrderRequest struct {
	BundleID     int    `json:"bundle_id"`
	Quantity     int    `json:"quantity"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	KRAPin       string `json:"kra_pin,omitempty"`
}
