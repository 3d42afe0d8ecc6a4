package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vmaccaroni/facturas-api/internal/application/dto"
	"github.com/vmaccaroni/facturas-api/internal/domain"
)

// writeError traduce un error de dominio al cuerpo {statusCode, status, message, field}.
// Errores inesperados se loguean y se responden con mensaje genérico (500).
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(fiber.StatusBadRequest, ve.Message, ve.Field))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).
			JSON(dto.NewError(fiber.StatusConflict, "cantidad mayor al stock disponible", "stock"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(dto.NewError(fiber.StatusNotFound, "recurso no encontrado", "id"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(fiber.StatusBadRequest, "recurso duplicado", "docNumber"))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error inesperado")
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.NewError(fiber.StatusInternalServerError, "error inesperado del servidor", "internal_error"))
	}
}

// badBody respuesta estándar para un body que no se pudo parsear.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).
		JSON(dto.NewError(fiber.StatusBadRequest, "cuerpo inválido", "body"))
}
