package billing_test

import (
	"context"
	"fmt"
	"time"

	"github.com/vmaccaroni/facturas-api/internal/domain/entity"
	"github.com/vmaccaroni/facturas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: almacén compartido, repos y runner transaccional
// ──────────────────────────────────────────────────────────────────────────────

// memStore almacén en memoria compartido por los repos fake.
type memStore struct {
	clients  map[string]*entity.Client
	products map[string]*entity.Product
	invoices map[string]*entity.Invoice
	details  map[string][]*entity.InvoiceDetail // por invoiceID
}

func newMemStore() *memStore {
	return &memStore{
		clients:  make(map[string]*entity.Client),
		products: make(map[string]*entity.Product),
		invoices: make(map[string]*entity.Invoice),
		details:  make(map[string][]*entity.InvoiceDetail),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.clients {
		cp := *v
		c.clients[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.invoices {
		cp := *v
		c.invoices[k] = &cp
	}
	for k, list := range s.details {
		for _, d := range list {
			cp := *d
			c.details[k] = append(c.details[k], &cp)
		}
	}
	return c
}

// memTxRunner emula la transacción: si fn falla restaura el estado previo,
// igual que un ROLLBACK.
type memTxRunner struct {
	s *memStore
}

func (r *memTxRunner) RunBilling(_ context.Context, fn func(
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&memClientRepo{s: r.s}, &memProductRepo{s: r.s}, &memInvoiceRepo{s: r.s})
	if err != nil {
		*r.s = *snapshot
	}
	return err
}

// fixedClock reloj determinístico para los tests.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now(context.Context) time.Time { return c.t }

// ── Clients ──────────────────────────────────────────────────────────────────

type memClientRepo struct {
	s *memStore
}

func (r *memClientRepo) Create(client *entity.Client) error {
	cp := *client
	r.s.clients[client.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByDocNumber(docNumber string) (*entity.Client, error) {
	for _, c := range r.s.clients {
		if c.DocNumber == docNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) List() ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memClientRepo) Update(client *entity.Client) error {
	cp := *client
	r.s.clients[client.ID] = &cp
	return nil
}

func (r *memClientRepo) Delete(id string) error {
	delete(r.s.clients, id)
	return nil
}

func (r *memClientRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.s.clients[id]
	return ok, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

type memProductRepo struct {
	s *memStore
}

func (r *memProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) AdjustStock(id string, delta int) error {
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	p.Stock += delta
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.s.products[id]
	return ok, nil
}

// ── Invoices ─────────────────────────────────────────────────────────────────

type memInvoiceRepo struct {
	s *memStore
}

func (r *memInvoiceRepo) Create(invoice *entity.Invoice) error {
	cp := *invoice
	r.s.invoices[invoice.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateDetail(detail *entity.InvoiceDetail) error {
	cp := *detail
	r.s.details[detail.InvoiceID] = append(r.s.details[detail.InvoiceID], &cp)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	var out []*entity.InvoiceDetail
	for _, d := range r.s.details[invoiceID] {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) List() ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) ListByClient(clientID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) Update(invoice *entity.Invoice) error {
	stored, ok := r.s.invoices[invoice.ID]
	if !ok {
		return fmt.Errorf("factura %s no existe", invoice.ID)
	}
	stored.ClientID = invoice.ClientID
	stored.Total = invoice.Total
	return nil
}

func (r *memInvoiceRepo) DeleteDetailsByInvoiceID(invoiceID string) error {
	delete(r.s.details, invoiceID)
	return nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	return nil
}
