package entity

import "time"

// Client representa un cliente del libro de ventas.
// DocNumber es la clave de negocio (única); las facturas lo referencian por ID.
type Client struct {
	ID        string
	Name      string
	LastName  string
	DocNumber string
	CreatedAt time.Time
	UpdatedAt time.Time
}
