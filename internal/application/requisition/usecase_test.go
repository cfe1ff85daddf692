package requisition_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/application/requisition"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type requisitionFixture struct {
	uc    *requisition.RequisitionUseCase
	items *fakeItemRepo
	movs  *fakeMovementRepo
	reqs  *fakeRequisitionRepo
	users *fakeUserRepo
}

const (
	fxUserID = "11111111-1111-1111-1111-111111111111"
	fxItemID = "22222222-2222-2222-2222-222222222222"
)

// newRequisitionFixture arma el caso de uso con fakes y datos base:
// un usuario y un artículo con 10 unidades en stock.
func newRequisitionFixture(t *testing.T) *requisitionFixture {
	t.Helper()
	users := newFakeUserRepo()
	items := newFakeItemRepo()
	movs := newFakeMovementRepo()
	reqs := newFakeRequisitionRepo()
	pkgs := newFakePackageRepo()
	tx := &fakeTxRunner{items: items, movs: movs, reqs: reqs, pkgs: pkgs}

	require.NoError(t, users.Create(&entity.User{ID: fxUserID, Name: "Ana", Email: "ana@example.com", Role: entity.RoleStandard}))
	require.NoError(t, items.Create(&entity.Item{ID: fxItemID, Name: "Tornillos", Quantity: 10}))

	return &requisitionFixture{
		uc:    requisition.NewRequisitionUseCase(tx, users, items, reqs),
		items: items,
		movs:  movs,
		reqs:  reqs,
		users: users,
	}
}

func (f *requisitionFixture) submit(t *testing.T, quantity int) *dto.RequisitionResponse {
	t.Helper()
	resp, err := f.uc.Submit(fxUserID, dto.CreateRequisitionRequest{
		ItemID:        fxItemID,
		Quantity:      quantity,
		CostCenter:    "CC-100",
		Project:       "Bodega Norte",
		Justification: "reposición de estantería",
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CreaPendienteSinTocarStock(t *testing.T) {
	f := newRequisitionFixture(t)

	resp := f.submit(t, 4)

	assert.Equal(t, entity.StatusPending, resp.Status)
	assert.Equal(t, "Tornillos", resp.ItemName)

	item, _ := f.items.GetByID(fxItemID)
	assert.Equal(t, 10, item.Quantity, "enviar una requisición no descuenta stock")
	assert.Empty(t, f.movs.movements, "enviar una requisición no registra movimientos")
}

func TestSubmit_CamposIncompletos_RetornaInvalidInput(t *testing.T) {
	f := newRequisitionFixture(t)

	_, err := f.uc.Submit(fxUserID, dto.CreateRequisitionRequest{ItemID: fxItemID, Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_CantidadMayorAlStock_RetornaInsufficientStock(t *testing.T) {
	f := newRequisitionFixture(t)

	_, err := f.uc.Submit(fxUserID, dto.CreateRequisitionRequest{
		ItemID:        fxItemID,
		Quantity:      11,
		CostCenter:    "CC-100",
		Project:       "Bodega Norte",
		Justification: "reposición",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"la verificación consultiva al enviar rechaza cantidades sobre el stock actual")
}

func TestSubmit_UsuarioInexistente_RetornaUserNotFound(t *testing.T) {
	f := newRequisitionFixture(t)

	_, err := f.uc.Submit("99999999-9999-9999-9999-999999999999", dto.CreateRequisitionRequest{
		ItemID:        fxItemID,
		Quantity:      1,
		CostCenter:    "CC-100",
		Project:       "Bodega Norte",
		Justification: "reposición",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DescuentaStockYRegistraMovimientoOUT(t *testing.T) {
	f := newRequisitionFixture(t)
	resp := f.submit(t, 4)

	require.NoError(t, f.uc.Approve(context.Background(), resp.ID))

	item, _ := f.items.GetByID(fxItemID)
	assert.Equal(t, 6, item.Quantity)

	req, _ := f.reqs.GetByID(resp.ID)
	assert.Equal(t, entity.StatusApproved, req.Status)

	require.Len(t, f.movs.movements, 1)
	mov := f.movs.movements[0]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.Equal(t, 4, mov.Quantity)
	assert.Equal(t, "CC-100", mov.Destination, "el movimiento OUT apunta al centro de costo")
}

func TestApprove_DobleAprobacion_RetornaInvalidTransition(t *testing.T) {
	f := newRequisitionFixture(t)
	resp := f.submit(t, 4)

	require.NoError(t, f.uc.Approve(context.Background(), resp.ID))
	err := f.uc.Approve(context.Background(), resp.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	item, _ := f.items.GetByID(fxItemID)
	assert.Equal(t, 6, item.Quantity, "la segunda aprobación no debe descontar de nuevo")
	assert.Len(t, f.movs.movements, 1, "la segunda aprobación no debe duplicar el movimiento")
}

func TestApprove_StockCayoDespuesDelEnvio_RetornaInsufficientStock(t *testing.T) {
	f := newRequisitionFixture(t)
	resp := f.submit(t, 8)

	// El stock baja entre el envío y la aprobación
	require.NoError(t, f.items.SetQuantity(fxItemID, 3))

	err := f.uc.Approve(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	req, _ := f.reqs.GetByID(resp.ID)
	assert.Equal(t, entity.StatusPending, req.Status, "la requisición sigue pendiente tras el fallo")
	item, _ := f.items.GetByID(fxItemID)
	assert.Equal(t, 3, item.Quantity, "el stock queda intacto tras el fallo")
	assert.Empty(t, f.movs.movements)
}

func TestApprove_Inexistente_RetornaNotFound(t *testing.T) {
	f := newRequisitionFixture(t)
	err := f.uc.Approve(context.Background(), "99999999-9999-9999-9999-999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_MarcaRechazadaSinEfectoEnStock(t *testing.T) {
	f := newRequisitionFixture(t)
	resp := f.submit(t, 4)

	require.NoError(t, f.uc.Reject(resp.ID, "sin presupuesto este mes"))

	req, _ := f.reqs.GetByID(resp.ID)
	assert.Equal(t, entity.StatusRejected, req.Status)
	assert.Equal(t, "sin presupuesto este mes", req.Notes)

	item, _ := f.items.GetByID(fxItemID)
	assert.Equal(t, 10, item.Quantity, "rechazar no toca el stock")
	assert.Empty(t, f.movs.movements)
}

func TestReject_DespuesDeAprobar_RetornaInvalidTransition(t *testing.T) {
	f := newRequisitionFixture(t)
	resp := f.submit(t, 4)

	require.NoError(t, f.uc.Approve(context.Background(), resp.ID))
	err := f.uc.Reject(resp.ID, "cambio de opinión")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	req, _ := f.reqs.GetByID(resp.ID)
	assert.Equal(t, entity.StatusApproved, req.Status, "el estado terminal no se reabre")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListPending_SoloPendientes(t *testing.T) {
	f := newRequisitionFixture(t)
	first := f.submit(t, 1)
	second := f.submit(t, 2)

	require.NoError(t, f.uc.Approve(context.Background(), first.ID))

	pending, err := f.uc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}
