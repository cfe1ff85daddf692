package repository

import "github.com/jhoicas/Requisiciones-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
//
// DecrementIfAvailable es la única primitiva sensible a concurrencia del sistema:
// debe ejecutarse como un compare-and-subtract atómico en el storage (un solo
// UPDATE condicional), nunca como lectura seguida de escritura. Devuelve el número
// de filas afectadas: 0 significa stock insuficiente y el caller debe tratarlo
// como fallo duro, no como no-op.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
	SetQuantity(id string, quantity int) error
	DecrementIfAvailable(id string, amount int) (int64, error)
	IncrementQuantity(id string, amount int) error
	Delete(id string) error
	DeleteAll() error
}
