package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura.
// CreatedAt es inmutable una vez emitida; Total es derivado de los detalles.
type Invoice struct {
	ID        string
	ClientID  string
	CreatedAt time.Time
	Total     decimal.Decimal
}
