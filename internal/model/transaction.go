package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionCompleted = "completed"
	TransactionCancelled = "cancelled"

	PaymentCash = "cash"
)

// Transaction is a completed sale. Immutable once created: the normal flow
// only ever inserts, never updates.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"not null;default:'cash'"`
	CashReceived  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ChangeAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null"`
	CashierID     uuid.UUID       `gorm:"type:uuid;index"`
	CashierName   string          `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time

	Items []TransactionItem `gorm:"foreignKey:TransactionID"`
}

// TransactionItem is one sold line. PriceAtTime pins the sale price; the
// product reference resolves to the CURRENT product row, so name, category
// and image may drift after the sale. Only the price is pinned.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity      int             `gorm:"not null"`
	PriceAtTime   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
