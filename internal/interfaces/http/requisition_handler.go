package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/application/requisition"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/pkg/logger"
)

// RequisitionHandler maneja el ciclo de vida de requisiciones de un solo artículo.
type RequisitionHandler struct {
	uc    *requisition.RequisitionUseCase
	pdfUC *requisition.PDFUseCase
	log   *logger.Logger
}

// NewRequisitionHandler construye el handler de requisiciones.
func NewRequisitionHandler(uc *requisition.RequisitionUseCase, pdfUC *requisition.PDFUseCase, log *logger.Logger) *RequisitionHandler {
	return &RequisitionHandler{uc: uc, pdfUC: pdfUC, log: log}
}

// Submit godoc
// @Summary      Crear requisición
// @Description  La suficiencia de stock se verifica al enviar de forma consultiva;
// @Description  la verificación vinculante ocurre al aprobar.
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRequisitionRequest  true  "requisición"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Submit(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !isUUID(in.ItemID) {
		return invalidID(c, "item_id")
	}
	req, err := h.uc.Submit(GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "todos los campos son requeridos y quantity > 0"})
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "el artículo no existe"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "la cantidad solicitada supera el stock disponible"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// ListByUser godoc
// @Summary      Requisiciones de un usuario
// @Tags         requisitions
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.RequisitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/requisitions/user/{userId} [get]
func (h *RequisitionHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !isUUID(userID) {
		return invalidID(c, "userId")
	}
	reqs, err := h.uc.ListByUser(userID)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(reqs)
}

// Pending godoc
// @Summary      Requisiciones pendientes (cola de aprobación)
// @Tags         requisitions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.RequisitionResponse
// @Router       /api/requisitions/pending [get]
func (h *RequisitionHandler) Pending(c *fiber.Ctx) error {
	reqs, err := h.uc.ListPending()
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(reqs)
}

// GetByID godoc
// @Summary      Obtener requisición por ID
// @Tags         requisitions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	req, err := h.uc.GetByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la requisición no existe"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(req)
}

// Approve godoc
// @Summary      Aprobar requisición
// @Description  Descuenta stock, registra el movimiento OUT y marca aprobada, todo
// @Description  en una sola transacción. Una requisición ya resuelta devuelve 409.
// @Tags         requisitions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/approve [post]
func (h *RequisitionHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	if err := h.uc.Approve(c.UserContext(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la requisición no existe"})
		case domain.ErrInvalidTransition:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: "la requisición ya fue resuelta"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para aprobar"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "requisición aprobada"})
}

// Reject godoc
// @Summary      Rechazar requisición
// @Description  Marca rechazada con motivo opcional. Sin efecto en stock.
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true   "ID de la requisición"
// @Param        body  body  dto.RejectRequest  false  "motivo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/reject [post]
func (h *RequisitionHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	var in dto.RejectRequest
	// El cuerpo es opcional
	_ = c.BodyParser(&in)
	if err := h.uc.Reject(id, in.Reason); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la requisición no existe"})
		case domain.ErrInvalidTransition:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: "la requisición ya fue resuelta"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "requisición rechazada"})
}

// Voucher godoc
// @Summary      Comprobante PDF de la requisición
// @Tags         requisitions
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/pdf [get]
func (h *RequisitionHandler) Voucher(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return invalidID(c, "id")
	}
	pdfBytes, err := h.pdfUC.GenerateVoucher(c.UserContext(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la requisición no existe"})
		}
		return internalError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="requisicion.pdf"`)
	return c.Send(pdfBytes)
}
