package repository

import "github.com/jhoicas/Requisiciones-api/internal/domain/entity"

// MovementRepository define el puerto del historial de movimientos.
// Solo inserción y lectura por ventana: el historial es inmutable en operación
// normal (DeleteAll existe únicamente para la importación transaccional).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListWindow(days int) ([]*entity.Movement, error)
	DeleteAll() error
}
