package repository

import "github.com/vmaccaroni/facturas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT ... FOR UPDATE).
	// Serializa la mutación de stock por producto; usar solo dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock suma delta (positivo o negativo) al stock del producto.
	AdjustStock(id string, delta int) error
	Delete(id string) error
	ExistsByID(id string) (bool, error)
}
