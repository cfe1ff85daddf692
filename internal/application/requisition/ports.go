package requisition

import (
	"context"

	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Cada aprobación es una unidad atómica: si el descuento condicional
// falla, ni el movimiento ni el cambio de estado deben quedar escritos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		reqRepo repository.RequisitionRepository,
		pkgRepo repository.PackageRepository,
	) error) error
}

// VoucherPDFGenerator genera el comprobante PDF de una requisición.
type VoucherPDFGenerator interface {
	GenerateVoucher(ctx context.Context, req *entity.Requisition) ([]byte, error)
}
