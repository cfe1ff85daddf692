package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/application/requisition"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/pkg/logger"
)

// PackageHandler maneja paquetes de requisición multi-artículo.
type PackageHandler struct {
	uc  *requisition.PackageUseCase
	log *logger.Logger
}

// NewPackageHandler construye el handler de paquetes.
func NewPackageHandler(uc *requisition.PackageUseCase, log *logger.Logger) *PackageHandler {
	return &PackageHandler{uc: uc, log: log}
}

// Submit godoc
// @Summary      Crear paquete de requisición
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePackageRequest  true  "encabezado y líneas"
// @Success      201   {object}  dto.PackageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/packages [post]
func (h *PackageHandler) Submit(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	for _, line := range in.Items {
		if !isUUID(line.ItemID) {
			return invalidID(c, "item_id")
		}
	}
	pkg, err := h.uc.Submit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "encabezado completo y al menos una línea con quantity > 0"})
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "una de las líneas referencia un artículo inexistente"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

// ListByUser godoc
// @Summary      Paquetes de un usuario
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.PackageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/packages/user/{userId} [get]
func (h *PackageHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !isUUID(userID) {
		return invalidID(c, "userId")
	}
	pkgs, err := h.uc.ListByUser(userID)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(pkgs)
}

// Pending godoc
// @Summary      Paquetes con líneas pendientes (cola de aprobación)
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PackageResponse
// @Router       /api/packages/pending [get]
func (h *PackageHandler) Pending(c *fiber.Ctx) error {
	pkgs, err := h.uc.ListPending()
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(pkgs)
}

// GetByID godoc
// @Summary      Obtener paquete por ID
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del paquete"
// @Success      200  {object}  dto.PackageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id} [get]
func (h *PackageHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	pkg, err := h.uc.GetByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paquete no existe"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(pkg)
}

// Items godoc
// @Summary      Líneas de un paquete
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del paquete"
// @Success      200  {array}  dto.PackageItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id}/items [get]
func (h *PackageHandler) Items(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	lines, err := h.uc.ListItems(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paquete no existe"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(lines)
}

// ApproveItem godoc
// @Summary      Aprobar una línea del paquete
// @Description  Mismo efecto por línea que aprobar una requisición simple; las
// @Description  líneas hermanas no se ven afectadas.
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "ID del paquete"
// @Param        itemId  path  string  true  "ID del artículo de la línea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/packages/{id}/items/{itemId}/approve [post]
func (h *PackageHandler) ApproveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	lineItemID := c.Params("itemId")
	if !isUUID(lineItemID) {
		return invalidID(c, "itemId")
	}
	if err := h.uc.ApproveItem(c.UserContext(), id, lineItemID); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paquete o la línea no existe"})
		case domain.ErrInvalidTransition:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: "la línea ya fue resuelta"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para aprobar la línea"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "línea aprobada"})
}

// RejectItem godoc
// @Summary      Rechazar una línea del paquete
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string             true   "ID del paquete"
// @Param        itemId  path  string             true   "ID del artículo de la línea"
// @Param        body    body  dto.RejectRequest  false  "motivo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/packages/{id}/items/{itemId}/reject [post]
func (h *PackageHandler) RejectItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	lineItemID := c.Params("itemId")
	if !isUUID(lineItemID) {
		return invalidID(c, "itemId")
	}
	var in dto.RejectRequest
	_ = c.BodyParser(&in)
	if err := h.uc.RejectItem(c.UserContext(), id, lineItemID, in.Reason); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paquete o la línea no existe"})
		case domain.ErrInvalidTransition:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: "la línea ya fue resuelta"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "línea rechazada"})
}

// ApproveAll godoc
// @Summary      Aprobar todas las líneas pendientes
// @Description  Best-effort: una línea sin stock se salta y queda reportada en
// @Description  errors; el lote nunca devuelve error por ella.
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del paquete"
// @Success      200  {object}  dto.BulkResolveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id}/approve-all [post]
func (h *PackageHandler) ApproveAll(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	out, err := h.uc.ApproveAll(c.UserContext(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paquete no existe"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}

// RejectAll godoc
// @Summary      Rechazar todas las líneas pendientes
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true   "ID del paquete"
// @Param        body  body  dto.RejectRequest  false  "motivo compartido"
// @Success      200  {object}  dto.BulkResolveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id}/reject-all [post]
func (h *PackageHandler) RejectAll(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	var in dto.RejectRequest
	_ = c.BodyParser(&in)
	out, err := h.uc.RejectAll(c.UserContext(), id, in.Reason)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paquete no existe"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}
