package repository

import "github.com/jhoicas/Requisiciones-api/internal/domain/entity"

// RequisitionRepository define el puerto de persistencia para Requisition.
type RequisitionRepository interface {
	Create(req *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	ListByUser(userID string) ([]*entity.Requisition, error)
	ListPending() ([]*entity.Requisition, error)
	// UpdateStatusIfPending cambia el estado solo si la fila sigue pendiente.
	// Devuelve filas afectadas: 0 = la requisición ya estaba resuelta.
	UpdateStatusIfPending(id, status, notes string) (int64, error)
}
