package transfer

import (
	"context"

	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos de stock ligados a ella.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error) error
}
