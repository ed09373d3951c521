package ds

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientInfo is the customer block printed on the estimate.
type ClientInfo struct {
	Name    string `gorm:"type:varchar(100)"`
	Company string `gorm:"type:varchar(100)"`
	Email   string `gorm:"type:varchar(100)"`
	Phone   string `gorm:"type:varchar(50)"`
}

// CompanySnapshot is the issuing company as it looked when the estimate was saved.
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

// Estimate is a saved estimate document.
type Estimate struct {
	ID                string     `gorm:"type:varchar(36);primaryKey"`
	UserID            uint       `gorm:"not null;index"`
	Title             string     `gorm:"type:varchar(200)"`
	TemplateID        string     `gorm:"type:varchar(50)"`
	DisplayClientName string     `gorm:"type:varchar(100)"`
	Client            ClientInfo `gorm:"embedded;embeddedPrefix:client_"`
	CompanyID         *string    `gorm:"type:varchar(36)"`
	Company           datatypes.JSONType[CompanySnapshot]

	// derived from Items and TaxRate on every save
	TotalAmount     float64 `gorm:"type:decimal(14,2);default:0"`
	TaxRate         float64 `gorm:"type:decimal(5,2);not null"`
	TaxAmount       float64 `gorm:"type:decimal(14,2);default:0"`
	FinalAmount     float64 `gorm:"type:decimal(14,2);default:0"`
	NegotiationRate int     `gorm:"type:int;default:0"`

	ValidUntil time.Time
	Notes      string `gorm:"type:text"`
	SavedAt    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Items []EstimateItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EstimateItem is one line of a saved estimate, kept in editor order.
type EstimateItem struct {
	ID          uint    `gorm:"primaryKey"`
	EstimateID  string  `gorm:"type:varchar(36);not null;index"`
	Position    int     `gorm:"not null"`
	ItemKey     string  `gorm:"type:varchar(64);not null"`
	Category    string  `gorm:"type:varchar(20);not null"`
	Name        string  `gorm:"type:varchar(200)"`
	Description string  `gorm:"type:text"`
	Quantity    float64 `gorm:"type:decimal(10,2);not null"`
	Unit        string  `gorm:"type:varchar(20)"`
	UnitPrice   float64 `gorm:"type:decimal(14,2);default:0"`
	TotalPrice  float64 `gorm:"type:decimal(14,2);default:0"`
	IsDiscount  bool    `gorm:"type:boolean;default:false;not null"`
}
