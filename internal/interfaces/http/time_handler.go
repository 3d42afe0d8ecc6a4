package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vmaccaroni/facturas-api/internal/application/billing"
	"github.com/vmaccaroni/facturas-api/internal/application/dto"
)

// TimeHandler expone la fecha actual según el ClockSource (con fallback local).
type TimeHandler struct {
	clock billing.ClockSource
}

// NewTimeHandler construye el handler.
func NewTimeHandler(clock billing.ClockSource) *TimeHandler {
	return &TimeHandler{clock: clock}
}

// Now GET /api/time/now
func (h *TimeHandler) Now(c *fiber.Ctx) error {
	return c.JSON(dto.CurrentTimeResponse{DateTime: h.clock.Now(c.Context())})
}
