package dto

import "github.com/shopspring/decimal"

// ProductForm is the multipart form for create/update. Price and stock arrive
// as text from the register UI and are validated numerically before any write.
type ProductForm struct {
	Name     string `form:"name" validate:"required"`
	Price    string `form:"price" validate:"required"`
	Stock    string `form:"stock" validate:"required"`
	Category string `form:"category"`
}

type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	Image    *string         `json:"image,omitempty"`
}
