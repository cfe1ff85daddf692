package repository

import "github.com/jhoicas/Requisiciones-api/internal/domain/entity"

// PackageRepository define el puerto de persistencia para Package y sus líneas.
type PackageRepository interface {
	Create(pkg *entity.Package, items []*entity.PackageItem) error
	GetByID(id string) (*entity.Package, error)
	ListByUser(userID string) ([]*entity.Package, error)
	// ListWithPendingItems devuelve paquetes que aún tienen al menos una línea pendiente.
	ListWithPendingItems() ([]*entity.Package, error)
	ListItems(packageID string) ([]*entity.PackageItem, error)
	GetItem(packageID, itemID string) (*entity.PackageItem, error)
	// UpdateItemStatusIfPending cambia el estado de una línea solo si sigue pendiente.
	// Devuelve filas afectadas: 0 = la línea ya estaba resuelta.
	UpdateItemStatusIfPending(packageID, itemID, status, notes string) (int64, error)
	// UpdateStatus persiste el estado agregado recalculado del paquete.
	UpdateStatus(packageID, status string) error
}
