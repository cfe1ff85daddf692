package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// TransferUseCase exportación e importación del inventario entre instancias.
// La importación es un reemplazo total: borra artículos y movimientos y recarga
// desde el paquete, todo dentro de una sola transacción.
type TransferUseCase struct {
	itemRepo   repository.ItemRepository
	movRepo    repository.MovementRepository
	txRunner   TxRunner
	windowDays int
}

// NewTransferUseCase construye el caso de uso. windowDays acota los movimientos
// incluidos en la exportación.
func NewTransferUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, txRunner TxRunner, windowDays int) *TransferUseCase {
	if windowDays <= 0 {
		windowDays = 365
	}
	return &TransferUseCase{itemRepo: itemRepo, movRepo: movRepo, txRunner: txRunner, windowDays: windowDays}
}

// Export arma el paquete de transferencia: todos los artículos más los
// movimientos de la ventana configurada.
func (uc *TransferUseCase) Export(ctx context.Context) (*dto.ExportBundle, error) {
	items, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListWindow(uc.windowDays)
	if err != nil {
		return nil, err
	}

	bundle := &dto.ExportBundle{
		Version:    dto.TransferVersion,
		ExportedAt: time.Now().UTC(),
		Items:      make([]dto.ItemResponse, 0, len(items)),
		Movements:  make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, it := range items {
		bundle.Items = append(bundle.Items, dto.ItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Serial:      it.Serial,
			Description: it.Description,
			Origin:      it.Origin,
			Destination: it.Destination,
			Value:       it.Value,
			InvoiceRef:  it.InvoiceRef,
			Quantity:    it.Quantity,
			Minimum:     it.Minimum,
			Ideal:       it.Ideal,
			Notes:       it.Notes,
			CreatedAt:   it.CreatedAt,
		})
	}
	for _, mv := range movements {
		bundle.Movements = append(bundle.Movements, dto.MovementResponse{
			ID:          mv.ID,
			ItemID:      mv.ItemID,
			ItemName:    mv.ItemName,
			Type:        mv.Type,
			Quantity:    mv.Quantity,
			Destination: mv.Destination,
			Description: mv.Description,
			CreatedAt:   mv.CreatedAt,
		})
	}
	return bundle, nil
}

// Import reemplaza el inventario con el contenido del paquete. Los IDs del
// paquete se remapean a UUIDs nuevos para no colisionar con historia previa de
// esta instancia; los movimientos se religan vía ese mapa. Un movimiento que
// referencia un artículo ausente del paquete invalida la importación completa.
func (uc *TransferUseCase) Import(ctx context.Context, bundle *dto.ExportBundle) (*dto.ImportResult, error) {
	if bundle == nil || bundle.Version != dto.TransferVersion {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range bundle.Items {
		if it.Name == "" || it.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, mv := range bundle.Movements {
		if mv.Type != entity.MovementTypeIN && mv.Type != entity.MovementTypeOUT {
			return nil, domain.ErrInvalidInput
		}
		if mv.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	result := &dto.ImportResult{}
	err := uc.txRunner.RunStock(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		// Los movimientos referencian artículos, van primero
		if err := movRepo.DeleteAll(); err != nil {
			return err
		}
		if err := itemRepo.DeleteAll(); err != nil {
			return err
		}

		idMap := make(map[string]string, len(bundle.Items))
		for _, it := range bundle.Items {
			newID := uuid.New().String()
			if it.ID != "" {
				idMap[it.ID] = newID
			}
			item := &entity.Item{
				ID:          newID,
				Name:        it.Name,
				Serial:      it.Serial,
				Description: it.Description,
				Origin:      it.Origin,
				Destination: it.Destination,
				Value:       it.Value,
				InvoiceRef:  it.InvoiceRef,
				Quantity:    it.Quantity,
				Minimum:     it.Minimum,
				Ideal:       it.Ideal,
				Notes:       it.Notes,
				CreatedAt:   it.CreatedAt,
			}
			if item.CreatedAt.IsZero() {
				item.CreatedAt = time.Now()
			}
			if err := itemRepo.Create(item); err != nil {
				return err
			}
			result.ItemsImported++
		}

		for _, mv := range bundle.Movements {
			itemID, ok := idMap[mv.ItemID]
			if !ok {
				return domain.ErrInvalidInput
			}
			movement := &entity.Movement{
				ID:          uuid.New().String(),
				ItemID:      itemID,
				ItemName:    mv.ItemName,
				Type:        mv.Type,
				Quantity:    mv.Quantity,
				Destination: mv.Destination,
				Description: mv.Description,
				CreatedAt:   mv.CreatedAt,
			}
			if movement.CreatedAt.IsZero() {
				movement.CreatedAt = time.Now()
			}
			if err := movRepo.Create(movement); err != nil {
				return err
			}
			result.MovementsImported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
