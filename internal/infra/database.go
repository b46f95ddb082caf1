package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
)

// NewDatabase opens the Postgres connection pool via GORM.
func NewDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates the schema for all persisted tables:
// users, profiles, products, transactions, transaction_items.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() defaults require pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
	)
}
