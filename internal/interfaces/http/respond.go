package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/pkg/logger"
)

// internalError registra la falla completa y responde 500 con un mensaje
// genérico: el detalle de la capa de almacenamiento no viaja al cliente.
func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno al atender la petición")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}

// isUUID reporta si s tiene forma de UUID. Un ID mal formado se rechaza en el
// borde HTTP; de lo contrario el cast a uuid en PostgreSQL falla con 22P02.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// invalidID responde 400 para un parámetro que no es un UUID.
func invalidID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "INVALID_ID",
		Message: "el parámetro " + name + " no es un UUID válido",
	})
}
