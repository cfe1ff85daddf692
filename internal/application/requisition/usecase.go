package requisition

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// Notas de resolución por defecto cuando el admin no escribe motivo.
const (
	defaultApproveNote = "Aprobada por el administrador"
	defaultRejectNote  = "Rechazada por el administrador"
)

// RequisitionUseCase ciclo de vida de la requisición de un solo artículo:
// pending -> approved | rejected, sin reapertura.
type RequisitionUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	reqRepo  repository.RequisitionRepository
}

// NewRequisitionUseCase construye el caso de uso.
func NewRequisitionUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	reqRepo repository.RequisitionRepository,
) *RequisitionUseCase {
	return &RequisitionUseCase{txRunner: txRunner, userRepo: userRepo, itemRepo: itemRepo, reqRepo: reqRepo}
}

// Submit crea una requisición pendiente. La verificación de stock aquí es solo
// consultiva: el stock puede cambiar antes de la aprobación, donde se re-verifica
// de forma autoritativa.
func (uc *RequisitionUseCase) Submit(userID string, in dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error) {
	if in.ItemID == "" || in.Quantity <= 0 || in.CostCenter == "" || in.Project == "" || in.Justification == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	// Chequeo consultivo al momento de enviar
	if item.Quantity < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	req := &entity.Requisition{
		ID:            uuid.New().String(),
		UserID:        userID,
		ItemID:        in.ItemID,
		Quantity:      in.Quantity,
		CostCenter:    in.CostCenter,
		Project:       in.Project,
		Justification: in.Justification,
		Status:        entity.StatusPending,
		CreatedAt:     time.Now(),
	}
	if err := uc.reqRepo.Create(req); err != nil {
		return nil, err
	}
	req.UserName = user.Name
	req.ItemName = item.Name
	return toRequisitionResponse(req), nil
}

// Approve aprueba una requisición pendiente. En UNA transacción: descuento
// condicional del stock, movimiento de salida y cambio de estado. Si el stock no
// alcanza se devuelve ErrInsufficientStock y la requisición sigue pendiente.
// Aprobar una requisición ya resuelta devuelve ErrInvalidTransition, nunca se re-aplica.
func (uc *RequisitionUseCase) Approve(ctx context.Context, id string) error {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.IsResolved() {
		return domain.ErrInvalidTransition
	}

	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		reqRepo repository.RequisitionRepository,
		_ repository.PackageRepository,
	) error {
		return approveOutInTx(itemRepo, movRepo, req.ItemID, req.ItemName, req.Quantity, req.CostCenter, req.Project, func() (int64, error) {
			return reqRepo.UpdateStatusIfPending(req.ID, entity.StatusApproved, defaultApproveNote)
		})
	})
}

// approveOutInTx efectos comunes de toda aprobación (requisición o línea de paquete):
// descuento condicional, movimiento OUT y flip de estado vía updateStatus, todo con
// los repos de la misma tx. updateStatus devuelve filas afectadas; 0 = otra petición
// resolvió primero y la tx completa se revierte.
func approveOutInTx(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	itemID, itemName string,
	quantity int,
	costCenter, project string,
	updateStatus func() (int64, error),
) error {
	affected, err := itemRepo.DecrementIfAvailable(itemID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInsufficientStock
	}
	mov := &entity.Movement{
		ItemID:      itemID,
		ItemName:    itemName,
		Type:        entity.MovementTypeOUT,
		Quantity:    quantity,
		Destination: costCenter,
		Description: "Requisición aprobada - Proyecto: " + project,
		CreatedAt:   time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return err
	}
	n, err := updateStatus()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Reject rechaza una requisición pendiente con motivo opcional. Sin efecto en stock.
func (uc *RequisitionUseCase) Reject(id, reason string) error {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if reason == "" {
		reason = defaultRejectNote
	}
	n, err := uc.reqRepo.UpdateStatusIfPending(id, entity.StatusRejected, reason)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// GetByID obtiene una requisición con nombres resueltos; ErrNotFound si no existe.
func (uc *RequisitionUseCase) GetByID(id string) (*dto.RequisitionResponse, error) {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toRequisitionResponse(req), nil
}

// ListByUser lista las requisiciones de un usuario, recientes primero.
func (uc *RequisitionUseCase) ListByUser(userID string) ([]*dto.RequisitionResponse, error) {
	reqs, err := uc.reqRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toRequisitionResponses(reqs), nil
}

// ListPending lista las requisiciones pendientes en orden de llegada.
func (uc *RequisitionUseCase) ListPending() ([]*dto.RequisitionResponse, error) {
	reqs, err := uc.reqRepo.ListPending()
	if err != nil {
		return nil, err
	}
	return toRequisitionResponses(reqs), nil
}

func toRequisitionResponses(reqs []*entity.Requisition) []*dto.RequisitionResponse {
	out := make([]*dto.RequisitionResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequisitionResponse(r))
	}
	return out
}

func toRequisitionResponse(r *entity.Requisition) *dto.RequisitionResponse {
	return &dto.RequisitionResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		Quantity:      r.Quantity,
		CostCenter:    r.CostCenter,
		Project:       r.Project,
		Justification: r.Justification,
		Status:        r.Status,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}
