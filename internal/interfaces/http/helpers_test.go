package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vmaccaroni/facturas-api/internal/application/billing"
	"github.com/vmaccaroni/facturas-api/internal/application/usecase"
	"github.com/vmaccaroni/facturas-api/internal/domain/entity"
	"github.com/vmaccaroni/facturas-api/internal/domain/repository"
	apphttp "github.com/vmaccaroni/facturas-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para montar la API completa sin PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2023, 7, 5, 11, 35, 42, 0, time.UTC)

type memStore struct {
	clients  map[string]*entity.Client
	products map[string]*entity.Product
	invoices map[string]*entity.Invoice
	details  map[string][]*entity.InvoiceDetail
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

type fixedClock struct{}

func (fixedClock) Now(context.Context) time.Time { return testNow }

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
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

func (r *memClientRepo) GetByDocNumber(doc string) (*entity.Client, error) {
	for _, c := range r.s.clients {
		if c.DocNumber == doc {
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

func (r *memClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
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

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
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

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
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

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateDetail(d *entity.InvoiceDetail) error {
	cp := *d
	r.s.details[d.InvoiceID] = append(r.s.details[d.InvoiceID], &cp)
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

func (r *memInvoiceRepo) GetDetailsByInvoiceID(id string) ([]*entity.InvoiceDetail, error) {
	var out []*entity.InvoiceDetail
	for _, d := range r.s.details[id] {
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

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	stored, ok := r.s.invoices[inv.ID]
	if !ok {
		return fmt.Errorf("factura %s no existe", inv.ID)
	}
	stored.ClientID = inv.ClientID
	stored.Total = inv.Total
	return nil
}

func (r *memInvoiceRepo) DeleteDetailsByInvoiceID(id string) error {
	delete(r.s.details, id)
	return nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Montaje de la app y helpers de request
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta la API completa (usecases reales) sobre el almacén en memoria.
func buildTestApp() (*fiber.App, *memStore) {
	s := newMemStore()
	clientRepo := &memClientRepo{s: s}
	productRepo := &memProductRepo{s: s}
	invoiceRepo := &memInvoiceRepo{s: s}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ClientUC:  usecase.NewClientUseCase(clientRepo),
		ProductUC: usecase.NewProductUseCase(productRepo),
		InvoiceUC: billing.NewInvoiceUseCase(&memTxRunner{s: s}, clientRepo, productRepo, invoiceRepo, fixedClock{}),
		Clock:     fixedClock{},
	})
	return app, s
}

func seedClient(s *memStore, id, name, lastName, doc string) {
	s.clients[id] = &entity.Client{ID: id, Name: name, LastName: lastName, DocNumber: doc}
}

func seedProduct(s *memStore, id, description string, stock int, price string) {
	s.products[id] = &entity.Product{
		ID: id, Description: description, Codigo: "COD-" + id,
		Stock: stock, Price: decimal.RequireFromString(price),
	}
}

// doJSON lanza una petición con body JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doRaw(t *testing.T, app *fiber.App, method, path, raw string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(raw)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func jsonDecode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
