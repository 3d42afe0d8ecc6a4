package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto a la venta.
// Stock solo lo muta el motor de facturación (alta, actualización y baja de facturas).
type Product struct {
	ID          string
	Description string
	Codigo      string
	Stock       int
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasStock indica si hay stock suficiente para la cantidad pedida.
func (p *Product) HasStock(amount int) bool {
	return p.Stock >= amount
}
