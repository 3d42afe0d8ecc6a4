package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vmaccaroni/facturas-api/internal/application/billing"
	"github.com/vmaccaroni/facturas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC  *usecase.ClientUseCase
	ProductUC *usecase.ProductUseCase
	InvoiceUC *billing.InvoiceUseCase
	Clock     billing.ClockSource
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/doc/:docNumber", clientHandler.GetByDocNumber)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/invoices", invoiceHandler.ListByClient)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Invoices
	invoices := api.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Time
	timeHandler := NewTimeHandler(deps.Clock)
	api.Get("/time/now", timeHandler.Now)
}
