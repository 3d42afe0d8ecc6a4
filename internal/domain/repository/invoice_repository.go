package repository

import "github.com/vmaccaroni/facturas-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus detalles.
// Los detalles se escriben con llamadas explícitas y ordenadas (sin cascada).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	GetByID(id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error)
	List() ([]*entity.Invoice, error)
	// ListByClient devuelve las facturas de un cliente (referencia inversa como consulta,
	// no como colección embebida).
	ListByClient(clientID string) ([]*entity.Invoice, error)
	// Update actualiza client_id y total; created_at nunca se modifica.
	Update(invoice *entity.Invoice) error
	DeleteDetailsByInvoiceID(invoiceID string) error
	Delete(id string) error
}
