package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityRef referencia por ID dentro de un body ({"id": "..."}).
type EntityRef struct {
	ID string `json:"id"`
}

// InvoiceDetailRequest línea del body de factura: producto referenciado y cantidad.
type InvoiceDetailRequest struct {
	Product *EntityRef `json:"product"`
	Amount  int        `json:"amount"`
}

// InvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
type InvoiceRequest struct {
	Client  *EntityRef             `json:"client"`
	Details []InvoiceDetailRequest `json:"details"`
}

// InvoiceDetailResponse línea de detalle con el precio capturado al facturar.
type InvoiceDetailResponse struct {
	ID      string          `json:"id"`
	Amount  int             `json:"amount"`
	Price   decimal.Decimal `json:"price"`
	Product ProductResponse `json:"product"`
}

// InvoiceResponse factura completa con cliente y detalles.
type InvoiceResponse struct {
	ID        string                  `json:"id"`
	Client    ClientResponse          `json:"client"`
	CreatedAt time.Time               `json:"createdAt"`
	Total     decimal.Decimal         `json:"total"`
	Details   []InvoiceDetailResponse `json:"details"`
}

// InvoiceEnvelope respuesta de creación/actualización: factura más totales derivados.
type InvoiceEnvelope struct {
	Invoice       InvoiceResponse `json:"invoice"`
	TotalProducts int             `json:"totalProducts"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// CurrentTimeResponse respuesta de GET /api/time/now.
type CurrentTimeResponse struct {
	DateTime time.Time `json:"dateTime"`
}
