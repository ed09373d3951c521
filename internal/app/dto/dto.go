package dto

import (
	"time"

	"estimator/internal/app/estimate"
)

// ============ Common ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Templates ============

type TemplateListResponse struct {
	Templates []estimate.Template `json:"templates"`
	Total     int                 `json:"total"`
}

type CalculateRequest struct {
	Items   []ItemRequest `json:"items" binding:"dive"`
	TaxRate *float64      `json:"tax_rate" binding:"omitempty,gte=0,lte=100"`
}

type CalculateResponse struct {
	Items  []estimate.Item `json:"items"`
	Totals estimate.Totals `json:"totals"`
}

// ============ Companies ============

type CompanyRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Address       string `json:"address" binding:"max=255"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email"`
	Website       string `json:"website" binding:"omitempty,url"`
	BizNo         string `json:"biz_no" binding:"max=50"`
	BizType       string `json:"biz_type" binding:"max=100"`
	BizItem       string `json:"biz_item" binding:"max=100"`
	BankName      string `json:"bank_name" binding:"max=100"`
	AccountNumber string `json:"account_number" binding:"max=100"`
	IsDefault     bool   `json:"is_default"`
}

type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Logo          *string   `json:"logo"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website"`
	BizNo         string    `json:"biz_no"`
	BizType       string    `json:"biz_type"`
	BizItem       string    `json:"biz_item"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	Signature     *string   `json:"signature"`
	Stamp         *string   `json:"stamp"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int               `json:"total"`
}

// ============ Customers ============

type CustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Company string `json:"company" binding:"max=100"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

// ============ Estimates ============

type ClientInfo struct {
	Name    string `json:"name" binding:"max=100"`
	Company string `json:"company" binding:"max=100"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
}

// ItemRequest is a line item as sent by the editor. TotalPrice is ignored
// and recomputed on the server. Quantity is checked against Unit by the
// struct-level rule registered in handler.RegisterValidators.
type ItemRequest struct {
	ID          string   `json:"id" binding:"max=64"`
	Category    string   `json:"category" binding:"required,oneof=planning production postProduction ai"`
	Name        string   `json:"name" binding:"max=200"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity" binding:"gte=0"`
	Unit        string   `json:"unit" binding:"max=20"`
	UnitPrice   float64  `json:"unit_price" binding:"gte=0"`
	TotalPrice  *float64 `json:"total_price,omitempty"`
	IsDiscount  bool     `json:"is_discount"`
}

// UpdateItemRequest changes only the fields that are present.
type UpdateItemRequest struct {
	Category    *string  `json:"category" binding:"omitempty,oneof=planning production postProduction ai"`
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,gte=0"`
	Unit        *string  `json:"unit" binding:"omitempty,max=20"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	IsDiscount  *bool    `json:"is_discount"`
}

type StepItemRequest struct {
	Delta int `json:"delta" binding:"required,oneof=1 -1"`
}

type DraftRequest struct {
	TemplateID string `json:"template_id"`
}

type SelectTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

type SelectCompanyRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
}

type EstimateRequest struct {
	Title             string        `json:"title" binding:"max=200"`
	TemplateID        string        `json:"template_id" binding:"max=50"`
	DisplayClientName string        `json:"display_client_name" binding:"max=100"`
	Client            ClientInfo    `json:"client_info"`
	CompanyID         *string       `json:"company_id"`
	Items             []ItemRequest `json:"items" binding:"dive"`
	TaxRate           *float64      `json:"tax_rate" binding:"omitempty,gte=0,lte=100"`
	ValidUntil        *time.Time    `json:"valid_until"`
	Notes             string        `json:"notes"`
}

type CompanySnapshot struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Logo          string `json:"logo,omitempty"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website,omitempty"`
	BizNo         string `json:"biz_no,omitempty"`
	BizType       string `json:"biz_type,omitempty"`
	BizItem       string `json:"biz_item,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Signature     string `json:"signature,omitempty"`
	Stamp         string `json:"stamp,omitempty"`
}

type EstimateResponse struct {
	ID                string           `json:"id,omitempty"`
	Title             string           `json:"title"`
	TemplateID        string           `json:"template_id"`
	DisplayClientName string           `json:"display_client_name"`
	Client            ClientInfo       `json:"client_info"`
	CompanyID         *string          `json:"company_id"`
	Company           *CompanySnapshot `json:"company_info"`
	Items             []estimate.Item  `json:"items"`
	TotalAmount       float64          `json:"total_amount"`
	TaxRate           float64          `json:"tax_rate"`
	TaxAmount         float64          `json:"tax_amount"`
	FinalAmount       float64          `json:"final_amount"`
	DiscountAmount    float64          `json:"discount_amount"`
	NegotiationRate   int              `json:"negotiation_rate"`
	ValidUntil        time.Time        `json:"valid_until"`
	Notes             string           `json:"notes"`
	SavedAt           *time.Time       `json:"saved_at,omitempty"`
	CreatedAt         *time.Time       `json:"created_at,omitempty"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"`
}

// EstimateSummary is one row of the saved estimates list.
type EstimateSummary struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	DisplayClientName string    `json:"display_client_name"`
	FinalAmount       float64   `json:"final_amount"`
	SavedAt           time.Time `json:"saved_at"`
}

type EstimateListResponse struct {
	Estimates []EstimateSummary `json:"estimates"`
	Total     int               `json:"total"`
}

// ============ Users ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}
