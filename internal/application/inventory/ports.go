package inventory

import (
	"context"

	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que cambio de cantidad y registro de movimiento queden
// juntos o no queden.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
