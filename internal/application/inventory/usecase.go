package inventory

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// InventoryUseCase casos de uso del almacén: artículos y movimientos manuales.
type InventoryUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	txRunner TxRunner
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, txRunner TxRunner) *InventoryUseCase {
	return &InventoryUseCase{itemRepo: itemRepo, movRepo: movRepo, txRunner: txRunner}
}

// CreateItem crea un artículo. Cantidad, mínimo e ideal parten en 0 si no vienen.
func (uc *InventoryUseCase) CreateItem(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.Minimum < 0 || in.Ideal < 0 {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Serial:      in.Serial,
		Description: in.Description,
		Origin:      in.Origin,
		Destination: in.Destination,
		Value:       in.Value,
		InvoiceRef:  in.InvoiceRef,
		Quantity:    in.Quantity,
		Minimum:     in.Minimum,
		Ideal:       in.Ideal,
		Notes:       in.Notes,
		CreatedAt:   time.Now(),
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems lista los artículos ordenados por nombre. Si query no es vacío se
// filtra por nombre sin distinguir mayúsculas ni tildes.
func (uc *InventoryUseCase) ListItems(query string) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	needle := foldName(query)
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		if needle != "" && !strings.Contains(foldName(it.Name), needle) {
			continue
		}
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// GetItem obtiene un artículo por ID; ErrNotFound si no existe.
func (uc *InventoryUseCase) GetItem(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// SetQuantity fija la cantidad absoluta de un artículo.
func (uc *InventoryUseCase) SetQuantity(id string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.SetQuantity(id, quantity)
}

// DeleteItem elimina un artículo por ID.
func (uc *InventoryUseCase) DeleteItem(id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(id)
}

// RegisterMovement registra un movimiento manual. IN suma stock; OUT lo descuenta
// con el decremento condicional (stock insuficiente = fallo, no no-op). Cambio de
// cantidad y registro del historial van en la misma transacción.
func (uc *InventoryUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.RunStock(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		if in.Type == entity.MovementTypeIN {
			if err := itemRepo.IncrementQuantity(in.ItemID, in.Quantity); err != nil {
				return err
			}
		} else {
			affected, err := itemRepo.DecrementIfAvailable(in.ItemID, in.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrInsufficientStock
			}
		}
		return movRepo.Create(&entity.Movement{
			ItemID:      item.ID,
			ItemName:    item.Name,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Destination: in.Destination,
			Description: in.Description,
			CreatedAt:   time.Now(),
		})
	})
}

// ListMovements devuelve el historial de los últimos days días, del más reciente
// al más antiguo. days fuera de rango se ajusta a [1, 3650].
func (uc *InventoryUseCase) ListMovements(days int) ([]*dto.MovementResponse, error) {
	if days <= 0 {
		days = 30
	}
	if days > 3650 {
		days = 3650
	}
	movements, err := uc.movRepo.ListWindow(days)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// foldName normaliza un nombre para comparación: minúsculas y sin marcas diacríticas
// (NFD, quitar Mn, NFC), para que "Almacén" y "almacen" coincidan.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
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
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		ItemName:    m.ItemName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Destination: m.Destination,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
