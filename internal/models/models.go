package models

type User struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Profile   Profile `json:"profile"`
}

type Profile struct {
	UserType           string  `json:"user_type"`
	Phone              string  `json:"phone"`
	CompanyName        string  `json:"company_name"`
	SchoolName         string  `json:"school_name"`
	AlumniSchool       string  `json:"alumni_school"`
	IsSalariedEmployee bool    `json:"is_salaried_employee"`
	Employer           *int    `json:"employer"`
	EmployerName       *string `json:"employer_name"`
	StaffNumber        string  `json:"staff_number"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email              string `json:"email"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	Password2          string `json:"password2"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	UserType           string `json:"user_type,omitempty"`
	Phone              string `json:"phone,omitempty"`
	IsSalariedEmployee *bool  `json:"is_salaried_employee,omitempty"`
	CompanyName        string `json:"company_name,omitempty"`
	SchoolName         string `json:"school_name,omitempty"`
	AlumniSchool       string `json:"alumni_school,omitempty"`
}

type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
