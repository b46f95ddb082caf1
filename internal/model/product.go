package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product categories are a fixed set; anything else is filed under "Others".
var ProductCategories = []string{"Snacks", "Beverages", "Canned Goods", "Household", "Personal Care", "Others"}

// Product is a catalog entry. Soft-deletable: IsDeleted=true removes it from
// catalog queries but the row survives so historical transaction items keep
// resolving by id.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string          `gorm:"index;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category  string          `gorm:"not null;default:'Others'" json:"category"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Image     *string         `json:"image,omitempty"`
	IsDeleted bool            `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
