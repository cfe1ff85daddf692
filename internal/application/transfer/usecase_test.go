package transfer_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/application/transfer"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memItemRepo struct {
	items map[string]*entity.Item
}

func newMemItemRepo() *memItemRepo { return &memItemRepo{items: make(map[string]*entity.Item)} }

func (r *memItemRepo) Create(it *entity.Item) error            { r.items[it.ID] = it; return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) { return r.items[id], nil }

func (r *memItemRepo) List() ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *memItemRepo) SetQuantity(id string, quantity int) error {
	if it := r.items[id]; it != nil {
		it.Quantity = quantity
	}
	return nil
}

func (r *memItemRepo) DecrementIfAvailable(id string, amount int) (int64, error) {
	it := r.items[id]
	if it == nil || it.Quantity < amount {
		return 0, nil
	}
	it.Quantity -= amount
	return 1, nil
}

func (r *memItemRepo) IncrementQuantity(id string, amount int) error {
	if it := r.items[id]; it != nil {
		it.Quantity += amount
	}
	return nil
}

func (r *memItemRepo) Delete(id string) error { delete(r.items, id); return nil }
func (r *memItemRepo) DeleteAll() error       { r.items = make(map[string]*entity.Item); return nil }

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error { r.movements = append(r.movements, m); return nil }
func (r *memMovementRepo) ListWindow(int) ([]*entity.Movement, error) {
	return r.movements, nil
}
func (r *memMovementRepo) DeleteAll() error { r.movements = nil; return nil }

// memTxRunner emula el rollback restaurando un snapshot cuando fn falla: una
// importación inválida debe dejar la base exactamente como estaba.
type memTxRunner struct {
	items *memItemRepo
	movs  *memMovementRepo
}

func (tx *memTxRunner) RunStock(
	_ context.Context,
	fn func(repository.ItemRepository, repository.MovementRepository) error,
) error {
	itemsBackup := make(map[string]*entity.Item, len(tx.items.items))
	for id, it := range tx.items.items {
		cp := *it
		itemsBackup[id] = &cp
	}
	movsBackup := append([]*entity.Movement(nil), tx.movs.movements...)

	if err := fn(tx.items, tx.movs); err != nil {
		tx.items.items = itemsBackup
		tx.movs.movements = movsBackup
		return err
	}
	return nil
}

func newTransferUC(t *testing.T) (*transfer.TransferUseCase, *memItemRepo, *memMovementRepo) {
	t.Helper()
	items := newMemItemRepo()
	movs := &memMovementRepo{}
	uc := transfer.NewTransferUseCase(items, movs, &memTxRunner{items: items, movs: movs}, 365)
	return uc, items, movs
}

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_IncluyeVersionYContenido(t *testing.T) {
	uc, items, movs := newTransferUC(t)
	require.NoError(t, items.Create(&entity.Item{ID: "item-1", Name: "Pintura", Quantity: 7, Value: decimal.NewFromInt(25000)}))
	require.NoError(t, movs.Create(&entity.Movement{ID: "mov-1", ItemID: "item-1", ItemName: "Pintura", Type: entity.MovementTypeIN, Quantity: 7}))

	bundle, err := uc.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.TransferVersion, bundle.Version)
	assert.False(t, bundle.ExportedAt.IsZero())
	require.Len(t, bundle.Items, 1)
	require.Len(t, bundle.Movements, 1)
	assert.Equal(t, "Pintura", bundle.Items[0].Name)
	assert.True(t, bundle.Items[0].Value.Equal(decimal.NewFromInt(25000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Import
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo completo: exportar de una instancia e importar en otra vacía. Los IDs se
// remapean pero los movimientos quedan ligados a su artículo.
func TestImport_RoundTripRemapeaIDs(t *testing.T) {
	source, srcItems, srcMovs := newTransferUC(t)
	require.NoError(t, srcItems.Create(&entity.Item{ID: "old-item", Name: "Pintura", Quantity: 7}))
	require.NoError(t, srcMovs.Create(&entity.Movement{ID: "old-mov", ItemID: "old-item", ItemName: "Pintura", Type: entity.MovementTypeIN, Quantity: 7}))

	bundle, err := source.Export(context.Background())
	require.NoError(t, err)

	dest, destItems, destMovs := newTransferUC(t)
	result, err := dest.Import(context.Background(), bundle)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ItemsImported)
	assert.Equal(t, 1, result.MovementsImported)

	imported, _ := destItems.List()
	require.Len(t, imported, 1)
	assert.NotEqual(t, "old-item", imported[0].ID, "el artículo recibe un UUID nuevo")
	assert.Equal(t, 7, imported[0].Quantity)

	require.Len(t, destMovs.movements, 1)
	assert.Equal(t, imported[0].ID, destMovs.movements[0].ItemID,
		"el movimiento se religa al ID nuevo del artículo")
}

func TestImport_ReemplazaElInventarioExistente(t *testing.T) {
	uc, items, movs := newTransferUC(t)
	require.NoError(t, items.Create(&entity.Item{ID: "viejo", Name: "Obsoleto", Quantity: 1}))
	require.NoError(t, movs.Create(&entity.Movement{ID: "m", ItemID: "viejo", Type: entity.MovementTypeIN, Quantity: 1}))

	result, err := uc.Import(context.Background(), &dto.ExportBundle{
		Version: dto.TransferVersion,
		Items:   []dto.ItemResponse{{ID: "nuevo", Name: "Brochas", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsImported)

	remaining, _ := items.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Brochas", remaining[0].Name, "el inventario previo desaparece completo")
	assert.Empty(t, movs.movements, "los movimientos previos también se borran")
}

func TestImport_VersionDesconocida_RetornaInvalidInput(t *testing.T) {
	uc, _, _ := newTransferUC(t)

	_, err := uc.Import(context.Background(), &dto.ExportBundle{Version: "9.9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un movimiento que referencia un artículo ausente del paquete invalida todo:
// la base queda exactamente como estaba antes del intento.
func TestImport_MovimientoConReferenciaRota_DejaBaseIntacta(t *testing.T) {
	uc, items, movs := newTransferUC(t)
	require.NoError(t, items.Create(&entity.Item{ID: "previo", Name: "Existente", Quantity: 9}))

	_, err := uc.Import(context.Background(), &dto.ExportBundle{
		Version: dto.TransferVersion,
		Items:   []dto.ItemResponse{{ID: "a", Name: "Nuevo", Quantity: 1}},
		Movements: []dto.MovementResponse{
			{ID: "m", ItemID: "fantasma", Type: entity.MovementTypeIN, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	remaining, _ := items.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Existente", remaining[0].Name, "la importación fallida no deja efectos")
	assert.Equal(t, 9, remaining[0].Quantity)
	assert.Empty(t, movs.movements)
}
