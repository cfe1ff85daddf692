package requisition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// PackageUseCase ciclo de vida de paquetes multi-artículo: cada línea se resuelve
// de forma independiente y el estado agregado del paquete se recalcula dentro de
// la misma transacción que cada transición de línea.
type PackageUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	pkgRepo  repository.PackageRepository
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	pkgRepo repository.PackageRepository,
) *PackageUseCase {
	return &PackageUseCase{txRunner: txRunner, userRepo: userRepo, itemRepo: itemRepo, pkgRepo: pkgRepo}
}

// Submit crea un paquete con sus líneas pendientes. Cada línea se valida de forma
// independiente (artículo existente, cantidad > 0) pero SIN precondición de stock:
// la suficiencia se evalúa por línea recién al aprobar, igual que en la requisición
// simple.
func (uc *PackageUseCase) Submit(ctx context.Context, userID string, in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if in.CostCenter == "" || in.Project == "" || in.Justification == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	lines := make([]*entity.PackageItem, 0, len(in.Items))
	for _, li := range in.Items {
		if li.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(li.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, &entity.PackageItem{
			ID:       uuid.New().String(),
			ItemID:   li.ItemID,
			Quantity: li.Quantity,
			Status:   entity.StatusPending,
			ItemName: item.Name,
		})
	}

	pkg := &entity.Package{
		ID:            uuid.New().String(),
		UserID:        userID,
		CostCenter:    in.CostCenter,
		Project:       in.Project,
		Justification: in.Justification,
		Status:        entity.StatusPending,
		CreatedAt:     time.Now(),
	}
	// Encabezado y líneas en la misma transacción
	err = uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.RequisitionRepository,
		pkgRepo repository.PackageRepository,
	) error {
		return pkgRepo.Create(pkg, lines)
	})
	if err != nil {
		return nil, err
	}
	pkg.UserName = user.Name
	pkg.ItemCount = len(lines)
	return toPackageResponse(pkg), nil
}

// ApproveItem aprueba una línea del paquete: mismo efecto por línea que la
// aprobación de una requisición simple (descuento + movimiento + estado), sin
// tocar a las líneas hermanas. El agregado se recalcula en la misma transacción.
func (uc *PackageUseCase) ApproveItem(ctx context.Context, packageID, itemID string) error {
	pkg, line, err := uc.getLine(packageID, itemID)
	if err != nil {
		return err
	}
	if line.Status != entity.StatusPending {
		return domain.ErrInvalidTransition
	}
	return uc.approveLineTx(ctx, pkg, line)
}

func (uc *PackageUseCase) approveLineTx(ctx context.Context, pkg *entity.Package, line *entity.PackageItem) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.RequisitionRepository,
		pkgRepo repository.PackageRepository,
	) error {
		err := approveOutInTx(itemRepo, movRepo, line.ItemID, line.ItemName, line.Quantity, pkg.CostCenter, pkg.Project, func() (int64, error) {
			return pkgRepo.UpdateItemStatusIfPending(pkg.ID, line.ItemID, entity.StatusApproved, defaultApproveNote)
		})
		if err != nil {
			return err
		}
		return recomputeStatus(pkgRepo, pkg.ID)
	})
}

// RejectItem rechaza una línea pendiente con motivo opcional. Sin efecto en stock.
func (uc *PackageUseCase) RejectItem(ctx context.Context, packageID, itemID, reason string) error {
	pkg, line, err := uc.getLine(packageID, itemID)
	if err != nil {
		return err
	}
	if line.Status != entity.StatusPending {
		return domain.ErrInvalidTransition
	}
	if reason == "" {
		reason = defaultRejectNote
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.RequisitionRepository,
		pkgRepo repository.PackageRepository,
	) error {
		n, err := pkgRepo.UpdateItemStatusIfPending(pkg.ID, line.ItemID, entity.StatusRejected, reason)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrInvalidTransition
		}
		return recomputeStatus(pkgRepo, pkg.ID)
	})
}

// ApproveAll aprueba todas las líneas pendientes del paquete, best-effort: cada
// línea es su propia unidad atómica, una línea sin stock se salta y queda
// reportada por nombre de artículo en Errors; el lote nunca aborta por ella.
// Explícitamente NO es una transacción todo-o-nada: el progreso parcial es el
// resultado esperado, no un bug.
func (uc *PackageUseCase) ApproveAll(ctx context.Context, packageID string) (*dto.BulkResolveResponse, error) {
	pkg, err := uc.pkgRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.pkgRepo.ListItems(packageID)
	if err != nil {
		return nil, err
	}

	out := &dto.BulkResolveResponse{Success: true}
	for _, line := range lines {
		if line.Status != entity.StatusPending {
			continue
		}
		if err := uc.approveLineTx(ctx, pkg, line); err != nil {
			out.Errors = append(out.Errors, dto.LineError{ItemName: line.ItemName, Reason: lineErrorReason(err)})
			continue
		}
		out.Resolved++
	}

	refreshed, err := uc.pkgRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}
	if refreshed != nil {
		out.Status = refreshed.Status
	}
	return out, nil
}

// RejectAll rechaza todas las líneas pendientes con un motivo compartido.
// No hay precondición de stock, así que siempre completa.
func (uc *PackageUseCase) RejectAll(ctx context.Context, packageID, reason string) (*dto.BulkResolveResponse, error) {
	pkg, err := uc.pkgRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	if reason == "" {
		reason = defaultRejectNote
	}

	out := &dto.BulkResolveResponse{Success: true}
	err = uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.RequisitionRepository,
		pkgRepo repository.PackageRepository,
	) error {
		lines, err := pkgRepo.ListItems(packageID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if line.Status != entity.StatusPending {
				continue
			}
			n, err := pkgRepo.UpdateItemStatusIfPending(packageID, line.ItemID, entity.StatusRejected, reason)
			if err != nil {
				return err
			}
			if n > 0 {
				out.Resolved++
			}
		}
		return recomputeStatus(pkgRepo, packageID)
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := uc.pkgRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}
	if refreshed != nil {
		out.Status = refreshed.Status
	}
	return out, nil
}

// GetByID obtiene un paquete; ErrNotFound si no existe.
func (uc *PackageUseCase) GetByID(id string) (*dto.PackageResponse, error) {
	pkg, err := uc.pkgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	return toPackageResponse(pkg), nil
}

// ListByUser lista los paquetes de un usuario, recientes primero.
func (uc *PackageUseCase) ListByUser(userID string) ([]*dto.PackageResponse, error) {
	pkgs, err := uc.pkgRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toPackageResponses(pkgs), nil
}

// ListPending lista los paquetes con al menos una línea pendiente, en orden de llegada.
func (uc *PackageUseCase) ListPending() ([]*dto.PackageResponse, error) {
	pkgs, err := uc.pkgRepo.ListWithPendingItems()
	if err != nil {
		return nil, err
	}
	return toPackageResponses(pkgs), nil
}

// ListItems devuelve las líneas de un paquete; ErrNotFound si el paquete no existe.
func (uc *PackageUseCase) ListItems(packageID string) ([]*dto.PackageItemResponse, error) {
	pkg, err := uc.pkgRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.pkgRepo.ListItems(packageID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PackageItemResponse, 0, len(lines))
	for _, li := range lines {
		out = append(out, &dto.PackageItemResponse{
			ID:       li.ID,
			ItemID:   li.ItemID,
			ItemName: li.ItemName,
			Quantity: li.Quantity,
			Status:   li.Status,
			Notes:    li.Notes,
		})
	}
	return out, nil
}

func (uc *PackageUseCase) getLine(packageID, itemID string) (*entity.Package, *entity.PackageItem, error) {
	pkg, err := uc.pkgRepo.GetByID(packageID)
	if err != nil {
		return nil, nil, err
	}
	if pkg == nil {
		return nil, nil, domain.ErrNotFound
	}
	line, err := uc.pkgRepo.GetItem(packageID, itemID)
	if err != nil {
		return nil, nil, err
	}
	if line == nil {
		return nil, nil, domain.ErrNotFound
	}
	return pkg, line, nil
}

// recomputeStatus relee las líneas con los repos de la tx en curso y persiste el
// agregado derivado. Nunca se confía en el agregado almacenado previo.
func recomputeStatus(pkgRepo repository.PackageRepository, packageID string) error {
	lines, err := pkgRepo.ListItems(packageID)
	if err != nil {
		return err
	}
	statuses := make([]string, 0, len(lines))
	for _, li := range lines {
		statuses = append(statuses, li.Status)
	}
	return pkgRepo.UpdateStatus(packageID, entity.ComputePackageStatus(statuses))
}

// lineErrorReason traduce el error de una línea a un motivo legible para el
// reporte del lote; los fallos de storage no se exponen textualmente.
func lineErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return domain.ErrInsufficientStock.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return domain.ErrInvalidTransition.Error()
	default:
		return "error interno al aprobar la línea"
	}
}

func toPackageResponses(pkgs []*entity.Package) []*dto.PackageResponse {
	out := make([]*dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, toPackageResponse(p))
	}
	return out
}

func toPackageResponse(p *entity.Package) *dto.PackageResponse {
	return &dto.PackageResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		UserName:      p.UserName,
		CostCenter:    p.CostCenter,
		Project:       p.Project,
		Justification: p.Justification,
		Status:        p.Status,
		ItemCount:     p.ItemCount,
		CreatedAt:     p.CreatedAt,
	}
}
