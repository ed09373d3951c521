package ds

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the issuing company printed in the estimate header.
// A user may keep several; at most one is flagged default.
type Company struct {
	ID            string  `gorm:"type:varchar(36);primaryKey"`
	UserID        uint    `gorm:"not null;index"`
	Name          string  `gorm:"type:varchar(100);not null"`
	Logo          *string `gorm:"type:varchar(512)"`
	Address       string  `gorm:"type:varchar(255)"`
	Phone         string  `gorm:"type:varchar(50)"`
	Email         string  `gorm:"type:varchar(100)"`
	Website       string  `gorm:"type:varchar(255)"`
	BizNo         string  `gorm:"type:varchar(50)"`
	BizType       string  `gorm:"type:varchar(100)"`
	BizItem       string  `gorm:"type:varchar(100)"`
	BankName      string  `gorm:"type:varchar(100)"`
	AccountNumber string  `gorm:"type:varchar(100)"`
	Signature     *string `gorm:"type:varchar(512)"`
	Stamp         *string `gorm:"type:varchar(512)"`
	IsDefault     bool    `gorm:"type:boolean;default:false;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Customer is a client profile that can be copied into an estimate.
type Customer struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(100);not null"`
	Company   string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(100)"`
	Phone     string `gorm:"type:varchar(50)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
