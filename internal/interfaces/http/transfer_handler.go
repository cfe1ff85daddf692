package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/application/transfer"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/pkg/logger"
)

// TransferHandler maneja la exportación e importación del inventario.
type TransferHandler struct {
	uc  *transfer.TransferUseCase
	log *logger.Logger
}

// NewTransferHandler construye el handler de transferencia.
func NewTransferHandler(uc *transfer.TransferUseCase, log *logger.Logger) *TransferHandler {
	return &TransferHandler{uc: uc, log: log}
}

// Export godoc
// @Summary      Exportar inventario
// @Description  Paquete JSON con todos los artículos y los movimientos de la
// @Description  ventana reciente, listo para importar en otra instancia.
// @Tags         transfer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ExportBundle
// @Router       /api/transfer/export [get]
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	bundle, err := h.uc.Export(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.json"`)
	return c.JSON(bundle)
}

// Import godoc
// @Summary      Importar inventario
// @Description  Reemplazo total dentro de una transacción: borra artículos y
// @Description  movimientos actuales y recarga desde el paquete. Un paquete
// @Description  inválido deja la base intacta.
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ExportBundle  true  "paquete exportado"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfer/import [post]
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	var bundle dto.ExportBundle
	if err := c.BodyParser(&bundle); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Import(c.UserContext(), &bundle)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BUNDLE", Message: "paquete inválido: versión desconocida o referencias rotas"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(result)
}
