package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/vmaccaroni/facturas-api/internal/application/dto"
	"github.com/vmaccaroni/facturas-api/internal/domain"
	"github.com/vmaccaroni/facturas-api/internal/domain/entity"
	"github.com/vmaccaroni/facturas-api/internal/domain/repository"
)

// InvoiceUseCase es el motor de facturación: valida la solicitud contra los
// stores de clientes y productos, descuenta stock, calcula totales y persiste
// la factura. Toda mutación corre dentro de una sola transacción: primero se
// valida el conjunto completo de líneas y recién después se aplica (sin
// commits parciales).
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	clock       ClockSource
}

// NewInvoiceUseCase construye el motor de facturación.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	clock ClockSource,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		clock:       clock,
	}
}

// validateShape valida la forma del body antes de tocar la BD.
func validateShape(in dto.InvoiceRequest) error {
	if in.Client == nil || in.Client.ID == "" {
		return domain.NewValidationError("client", "el cliente es obligatorio")
	}
	if len(in.Details) == 0 {
		return domain.NewValidationError("details", "los detalles de la factura son obligatorios")
	}
	for _, d := range in.Details {
		if d.Product == nil || d.Product.ID == "" {
			return domain.NewValidationError("product", "cada detalle debe tener un producto asociado")
		}
		if d.Amount <= 0 {
			return domain.NewValidationError("amount", "la cantidad del producto debe ser mayor a 0")
		}
	}
	return nil
}

// resolveAndReserve es la fase de validación dentro de la transacción: bloquea
// cada producto (FOR UPDATE), verifica existencia y acumula la cantidad total
// requerida por producto contra el stock disponible. No muta nada.
func resolveAndReserve(productRepo repository.ProductRepository, details []dto.InvoiceDetailRequest) (map[string]*entity.Product, map[string]int, error) {
	products := make(map[string]*entity.Product)
	required := make(map[string]int)
	for _, d := range details {
		if _, ok := products[d.Product.ID]; !ok {
			p, err := productRepo.GetByIDForUpdate(d.Product.ID)
			if err != nil {
				return nil, nil, err
			}
			if p == nil {
				return nil, nil, domain.NewValidationError("product", "producto no existe")
			}
			products[d.Product.ID] = p
		}
		required[d.Product.ID] += d.Amount
		if !products[d.Product.ID].HasStock(required[d.Product.ID]) {
			return nil, nil, domain.ErrInsufficientStock
		}
	}
	return products, required, nil
}

// Create emite una nueva factura descontando stock, todo o nada.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest) (*dto.InvoiceEnvelope, error) {
	if err := validateShape(in); err != nil {
		return nil, err
	}

	createdAt := uc.clock.Now(ctx)
	var inv *entity.Invoice
	var details []*entity.InvoiceDetail
	var client *entity.Client
	var products map[string]*entity.Product

	err := uc.txRunner.RunBilling(ctx, func(
		clientRepo repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		client, err = clientRepo.GetByID(in.Client.ID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.NewValidationError("client", "cliente no existe")
		}

		var required map[string]int
		products, required, err = resolveAndReserve(productRepo, in.Details)
		if err != nil {
			return err
		}

		// Fase de aplicación: descuento de stock y escritura ordenada.
		for productID, amount := range required {
			if err := productRepo.AdjustStock(productID, -amount); err != nil {
				return err
			}
			products[productID].Stock -= amount
		}

		inv = &entity.Invoice{
			ID:        uuid.New().String(),
			ClientID:  client.ID,
			CreatedAt: createdAt,
		}
		details = make([]*entity.InvoiceDetail, 0, len(in.Details))
		for _, d := range in.Details {
			details = append(details, &entity.InvoiceDetail{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: d.Product.ID,
				Amount:    d.Amount,
				Price:     products[d.Product.ID].Price, // snapshot del precio vigente
			})
		}
		inv.Total = Total(details)

		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, detail := range details {
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toEnvelope(inv, client, details, products), nil
}

// Update reemplaza por completo el conjunto de detalles de una factura.
// Primero devuelve al stock las cantidades de los detalles anteriores y recién
// después valida y aplica el conjunto nuevo, en la misma transacción.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoiceRequest) (*dto.InvoiceEnvelope, error) {
	if err := validateShape(in); err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	var details []*entity.InvoiceDetail
	var client *entity.Client
	var products map[string]*entity.Product

	err := uc.txRunner.RunBilling(ctx, func(
		clientRepo repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByID(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}

		client, err = clientRepo.GetByID(in.Client.ID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.NewValidationError("client", "cliente no existe")
		}

		// Liberar el stock consumido por los detalles anteriores.
		oldDetails, err := invoiceRepo.GetDetailsByInvoiceID(id)
		if err != nil {
			return err
		}
		for _, d := range oldDetails {
			if err := productRepo.AdjustStock(d.ProductID, d.Amount); err != nil {
				return err
			}
		}
		if err := invoiceRepo.DeleteDetailsByInvoiceID(id); err != nil {
			return err
		}

		var required map[string]int
		products, required, err = resolveAndReserve(productRepo, in.Details)
		if err != nil {
			return err
		}
		for productID, amount := range required {
			if err := productRepo.AdjustStock(productID, -amount); err != nil {
				return err
			}
			products[productID].Stock -= amount
		}

		details = make([]*entity.InvoiceDetail, 0, len(in.Details))
		for _, d := range in.Details {
			details = append(details, &entity.InvoiceDetail{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: d.Product.ID,
				Amount:    d.Amount,
				Price:     products[d.Product.ID].Price,
			})
		}
		inv.ClientID = client.ID
		inv.Total = Total(details)

		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		for _, detail := range details {
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toEnvelope(inv, client, details, products), nil
}

// Delete elimina una factura devolviendo al stock las cantidades de sus detalles.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunBilling(ctx, func(
		_ repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		inv, err := invoiceRepo.GetByID(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		details, err := invoiceRepo.GetDetailsByInvoiceID(id)
		if err != nil {
			return err
		}
		for _, d := range details {
			if err := productRepo.AdjustStock(d.ProductID, d.Amount); err != nil {
				return err
			}
		}
		if err := invoiceRepo.DeleteDetailsByInvoiceID(id); err != nil {
			return err
		}
		return invoiceRepo.Delete(id)
	})
}

// GetByID obtiene una factura completa con cliente y detalles.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.assemble(inv)
}

// List devuelve todas las facturas con su detalle.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.assembleAll(invoices)
}

// ListByClient devuelve las facturas de un cliente.
func (uc *InvoiceUseCase) ListByClient(ctx context.Context, clientID string) ([]*dto.InvoiceResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	invoices, err := uc.invoiceRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	return uc.assembleAll(invoices)
}

func (uc *InvoiceUseCase) assembleAll(invoices []*entity.Invoice) ([]*dto.InvoiceResponse, error) {
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp, err := uc.assemble(inv)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// assemble arma la respuesta de una factura leyendo cliente, detalles y productos.
func (uc *InvoiceUseCase) assemble(inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product)
	for _, d := range details {
		if _, ok := products[d.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(d.ProductID)
		if err != nil {
			return nil, err
		}
		products[d.ProductID] = p
	}
	return toInvoiceResponse(inv, client, details, products), nil
}

func (uc *InvoiceUseCase) toEnvelope(inv *entity.Invoice, client *entity.Client, details []*entity.InvoiceDetail, products map[string]*entity.Product) *dto.InvoiceEnvelope {
	return &dto.InvoiceEnvelope{
		Invoice:       *toInvoiceResponse(inv, client, details, products),
		TotalProducts: TotalProducts(details),
		TotalAmount:   inv.Total,
	}
}

func toInvoiceResponse(inv *entity.Invoice, client *entity.Client, details []*entity.InvoiceDetail, products map[string]*entity.Product) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:        inv.ID,
		CreatedAt: inv.CreatedAt,
		Total:     inv.Total,
		Details:   make([]dto.InvoiceDetailResponse, 0, len(details)),
	}
	if client != nil {
		resp.Client = dto.ClientResponse{
			ID:        client.ID,
			Name:      client.Name,
			LastName:  client.LastName,
			DocNumber: client.DocNumber,
		}
	} else {
		resp.Client = dto.ClientResponse{ID: inv.ClientID}
	}
	for _, d := range details {
		dr := dto.InvoiceDetailResponse{
			ID:     d.ID,
			Amount: d.Amount,
			Price:  d.Price,
		}
		if p := products[d.ProductID]; p != nil {
			dr.Product = dto.ProductResponse{
				ID:          p.ID,
				Description: p.Description,
				Codigo:      p.Codigo,
				Stock:       p.Stock,
				Price:       p.Price,
			}
		} else {
			dr.Product = dto.ProductResponse{ID: d.ProductID}
		}
		resp.Details = append(resp.Details, dr)
	}
	return resp
}
