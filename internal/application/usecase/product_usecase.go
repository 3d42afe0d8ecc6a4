package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vmaccaroni/facturas-api/internal/application/dto"
	"github.com/vmaccaroni/facturas-api/internal/domain"
	"github.com/vmaccaroni/facturas-api/internal/domain/entity"
	"github.com/vmaccaroni/facturas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// El stock solo lo muta el motor de facturación; aquí se fija el stock inicial
// y se permite corregirlo vía Update.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Description == "" || in.Codigo == "" {
		return nil, domain.NewValidationError("product", "description y codigo son obligatorios")
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "el stock no puede ser negativo")
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Description: in.Description,
		Codigo:      in.Codigo,
		Stock:       in.Stock,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List() ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto existente (incluye corrección manual de stock).
func (uc *ProductUseCase) Update(id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "el stock no puede ser negativo")
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	product.Description = in.Description
	product.Codigo = in.Codigo
	product.Stock = in.Stock
	product.Price = in.Price
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	exists, err := uc.repo.ExistsByID(id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Description: p.Description,
		Codigo:      p.Codigo,
		Stock:       p.Stock,
		Price:       p.Price,
	}
}
