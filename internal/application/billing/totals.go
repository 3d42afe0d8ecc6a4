package billing

import (
	"github.com/shopspring/decimal"
	"github.com/vmaccaroni/facturas-api/internal/domain/entity"
)

// Total suma amount × price sobre las líneas de la factura (función pura).
func Total(details []*entity.InvoiceDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Subtotal())
	}
	return total
}

// TotalProducts suma las cantidades de todas las líneas (función pura).
func TotalProducts(details []*entity.InvoiceDetail) int {
	n := 0
	for _, d := range details {
		n += d.Amount
	}
	return n
}
