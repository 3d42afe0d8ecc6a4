package repository

import "github.com/vmaccaroni/facturas-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByDocNumber(docNumber string) (*entity.Client, error)
	List() ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
	ExistsByID(id string) (bool, error)
}
