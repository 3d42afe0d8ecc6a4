package dto

import "github.com/shopspring/decimal"

// ProductRequest body para POST/PUT /api/products.
type ProductRequest struct {
	Description string          `json:"description"`
	Codigo      string          `json:"codigo"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Codigo      string          `json:"codigo"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
}
