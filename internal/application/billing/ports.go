package billing

import (
	"context"
	"time"

	"github.com/vmaccaroni/facturas-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Garantiza atomicidad para el motor de
// facturación: si fn retorna error se hace rollback de todo (stock incluido).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// ClockSource provee la fecha de emisión de las facturas.
// Nunca falla: las implementaciones degradan al reloj local si es necesario.
type ClockSource interface {
	Now(ctx context.Context) time.Time
}
