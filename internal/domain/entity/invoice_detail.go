package entity

import "github.com/shopspring/decimal"

// InvoiceDetail representa una línea de detalle de una factura.
// Price es el precio del producto capturado al emitir la factura; cambios
// posteriores del precio del producto no alteran facturas existentes.
type InvoiceDetail struct {
	ID        string
	InvoiceID string
	ProductID string
	Amount    int
	Price     decimal.Decimal
}

// Subtotal devuelve amount × price de la línea.
func (d *InvoiceDetail) Subtotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Amount)))
}
