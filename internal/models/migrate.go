package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every model in dependency
// order.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Product{},
		&Review{},
		&Order{},
		&OrderItem{},
		&PaymentTransaction{},
	)
}
