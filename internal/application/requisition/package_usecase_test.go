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

type packageFixture struct {
	uc    *requisition.PackageUseCase
	items *fakeItemRepo
	movs  *fakeMovementRepo
	pkgs  *fakePackageRepo
}

const (
	fxItemA = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	fxItemB = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

// newPackageFixture arma el caso de uso con fakes y datos base: un usuario y
// dos artículos, A con 5 unidades y B con 3.
func newPackageFixture(t *testing.T) *packageFixture {
	t.Helper()
	users := newFakeUserRepo()
	items := newFakeItemRepo()
	movs := newFakeMovementRepo()
	reqs := newFakeRequisitionRepo()
	pkgs := newFakePackageRepo()
	tx := &fakeTxRunner{items: items, movs: movs, reqs: reqs, pkgs: pkgs}

	require.NoError(t, users.Create(&entity.User{ID: fxUserID, Name: "Ana", Email: "ana@example.com", Role: entity.RoleStandard}))
	require.NoError(t, items.Create(&entity.Item{ID: fxItemA, Name: "Guantes", Quantity: 5}))
	require.NoError(t, items.Create(&entity.Item{ID: fxItemB, Name: "Cascos", Quantity: 3}))

	return &packageFixture{
		uc:    requisition.NewPackageUseCase(tx, users, items, pkgs),
		items: items,
		movs:  movs,
		pkgs:  pkgs,
	}
}

// submitAB crea un paquete con 2 de A y quantityB de B.
func (f *packageFixture) submitAB(t *testing.T, quantityB int) *dto.PackageResponse {
	t.Helper()
	resp, err := f.uc.Submit(context.Background(), fxUserID, dto.CreatePackageRequest{
		CostCenter:    "CC-200",
		Project:       "Obra Sur",
		Justification: "dotación de seguridad",
		Items: []dto.PackageLineRequest{
			{ItemID: fxItemA, Quantity: 2},
			{ItemID: fxItemB, Quantity: quantityB},
		},
	})
	require.NoError(t, err)
	return resp
}

func (f *packageFixture) quantity(t *testing.T, itemID string) int {
	t.Helper()
	item, err := f.items.GetByID(itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestPackageSubmit_CreaPendienteConLineas(t *testing.T) {
	f := newPackageFixture(t)

	resp := f.submitAB(t, 1)

	assert.Equal(t, entity.StatusPending, resp.Status)
	assert.Equal(t, 2, resp.ItemCount)

	lines, err := f.uc.ListItems(resp.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, li := range lines {
		assert.Equal(t, entity.StatusPending, li.Status)
	}
}

func TestPackageSubmit_SinLineas_RetornaInvalidInput(t *testing.T) {
	f := newPackageFixture(t)

	_, err := f.uc.Submit(context.Background(), fxUserID, dto.CreatePackageRequest{
		CostCenter:    "CC-200",
		Project:       "Obra Sur",
		Justification: "dotación",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPackageSubmit_LineaConArticuloInexistente_RetornaNotFound(t *testing.T) {
	f := newPackageFixture(t)

	_, err := f.uc.Submit(context.Background(), fxUserID, dto.CreatePackageRequest{
		CostCenter:    "CC-200",
		Project:       "Obra Sur",
		Justification: "dotación",
		Items: []dto.PackageLineRequest{
			{ItemID: "99999999-9999-9999-9999-999999999999", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución por línea
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveItem_NoAfectaLineasHermanas(t *testing.T) {
	f := newPackageFixture(t)
	resp := f.submitAB(t, 1)

	require.NoError(t, f.uc.ApproveItem(context.Background(), resp.ID, fxItemA))

	assert.Equal(t, 3, f.quantity(t, fxItemA), "la línea aprobada descuenta su artículo")
	assert.Equal(t, 3, f.quantity(t, fxItemB), "la línea hermana queda intacta")

	lineB, _ := f.pkgs.GetItem(resp.ID, fxItemB)
	assert.Equal(t, entity.StatusPending, lineB.Status)

	// El agregado se recalcula: una aprobada + una pendiente = pending
	pkg, _ := f.pkgs.GetByID(resp.ID)
	assert.Equal(t, entity.StatusPending, pkg.Status)
}

func TestApproveItem_DobleAprobacion_RetornaInvalidTransition(t *testing.T) {
	f := newPackageFixture(t)
	resp := f.submitAB(t, 1)

	require.NoError(t, f.uc.ApproveItem(context.Background(), resp.ID, fxItemA))
	err := f.uc.ApproveItem(context.Background(), resp.ID, fxItemA)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 3, f.quantity(t, fxItemA), "no se descuenta dos veces")
}

func TestRejectItem_ActualizaAgregadoParcial(t *testing.T) {
	f := newPackageFixture(t)
	resp := f.submitAB(t, 1)

	require.NoError(t, f.uc.ApproveItem(context.Background(), resp.ID, fxItemA))
	require.NoError(t, f.uc.RejectItem(context.Background(), resp.ID, fxItemB, "no disponible este mes"))

	assert.Equal(t, 3, f.quantity(t, fxItemB), "rechazar una línea no toca el stock")

	// aprobada + rechazada, sin pendientes = partially_approved
	pkg, _ := f.pkgs.GetByID(resp.ID)
	assert.Equal(t, entity.PackageStatusPartial, pkg.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución masiva
// ──────────────────────────────────────────────────────────────────────────────

// La aprobación masiva es best-effort: la línea B pide más de lo que hay, se
// salta y queda reportada; la línea A se aprueba igual.
func TestApproveAll_BestEffortConLineaSinStock(t *testing.T) {
	f := newPackageFixture(t)
	resp := f.submitAB(t, 10) // B pide 10 con stock 3: solo fallará al aprobar

	out, err := f.uc.ApproveAll(context.Background(), resp.ID)
	require.NoError(t, err, "el lote no aborta por una línea sin stock")

	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Resolved)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Cascos", out.Errors[0].ItemName, "el error se reporta por nombre de artículo")

	assert.Equal(t, 3, f.quantity(t, fxItemA), "la línea A sí se aprobó")
	assert.Equal(t, 3, f.quantity(t, fxItemB), "la línea B quedó intacta")

	lineB, _ := f.pkgs.GetItem(resp.ID, fxItemB)
	assert.Equal(t, entity.StatusPending, lineB.Status, "la línea fallida sigue pendiente")
	assert.Equal(t, entity.StatusPending, out.Status, "el agregado sigue pending por la línea pendiente")
}

func TestApproveAll_TodasConStock_ApruebaElPaquete(t *testing.T) {
	f := newPackageFixture(t)
	resp := f.submitAB(t, 2)

	out, err := f.uc.ApproveAll(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Resolved)
	assert.Empty(t, out.Errors)
	assert.Equal(t, entity.StatusApproved, out.Status)
	assert.Equal(t, 3, f.quantity(t, fxItemA))
	assert.Equal(t, 1, f.quantity(t, fxItemB))
	assert.Len(t, f.movs.movements, 2, "un movimiento OUT por línea aprobada")
}

func TestRejectAll_RechazaSoloLasPendientes(t *testing.T) {
	f := newPackageFixture(t)
	resp := f.submitAB(t, 1)

	require.NoError(t, f.uc.ApproveItem(context.Background(), resp.ID, fxItemA))

	out, err := f.uc.RejectAll(context.Background(), resp.ID, "cierre de periodo")
	require.NoError(t, err)

	assert.Equal(t, 1, out.Resolved, "solo la línea pendiente se rechaza")
	assert.Equal(t, entity.PackageStatusPartial, out.Status)

	lineA, _ := f.pkgs.GetItem(resp.ID, fxItemA)
	assert.Equal(t, entity.StatusApproved, lineA.Status, "la línea ya aprobada no se reabre")
}
