package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemView is a product snapshot plus quantity — the shape the cart,
// transaction history and analytics all share. For historical lines the
// price is the pinned price_at_time while name/category/image come from the
// current product row.
type CartItemView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    *string         `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
	Stock    int             `json:"stock"`
}

// TransactionView is the in-memory transaction representation kept by the POS
// store and served on the history endpoint (newest first).
type TransactionView struct {
	ID            string          `json:"id"`
	Items         []CartItemView  `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CashReceived  decimal.Decimal `json:"cash_received"`
	Change        decimal.Decimal `json:"change"`
	Status        string          `json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
	CashierName   string          `json:"cashier_name"`
}

// CheckoutRequest tenders cash against the current cart.
type CheckoutRequest struct {
	CashReceived decimal.Decimal `json:"cash_received" validate:"required"`
}

type CartResponse struct {
	Items        []CartItemView  `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CheckoutOpen bool            `json:"checkout_open"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type ToggleCheckoutRequest struct {
	Open bool `json:"open"`
}
