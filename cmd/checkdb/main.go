package main

import (
	"fmt"

	"estimator/internal/app/ds"
	"estimator/internal/app/dsn"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// checkdb prints row counts and the default company of every user.
func main() {
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	for _, model := range []interface{}{&ds.User{}, &ds.Company{}, &ds.Customer{}, &ds.Estimate{}, &ds.EstimateItem{}} {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			logrus.Fatal("Failed to count rows:", err)
		}
		fmt.Printf("%T: %d rows\n", model, count)
	}

	var companies []ds.Company
	if err := db.Where("is_default = ?", true).Order("user_id").Find(&companies).Error; err != nil {
		logrus.Fatal("Failed to get companies:", err)
	}

	fmt.Println("Default companies:")
	for _, c := range companies {
		logo := "NULL"
		if c.Logo != nil {
			logo = *c.Logo
		}
		fmt.Printf("User: %d, ID: %s, Name: %s, Logo: %s\n", c.UserID, c.ID, c.Name, logo)
	}
}
