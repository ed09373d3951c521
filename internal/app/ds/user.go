package ds

import (
	"time"

	"estimator/internal/app/role"
)

// User owns companies, customers and estimates.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Login     string    `gorm:"type:varchar(50);unique;not null"`
	Password  string    `gorm:"type:varchar(255);not null"` // bcrypt
	FullName  string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(100)"`
	Role      role.Role `gorm:"type:int;default:0;not null"`
	CreatedAt time.Time
}
