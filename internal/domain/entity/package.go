package entity

import "time"

// PackageStatusPartial es el estado agregado adicional de un paquete: líneas terminales
// mezcladas (al menos una aprobada y una rechazada) sin pendientes.
const PackageStatusPartial = "partially_approved"

// Package agrupa N líneas de requisición bajo un mismo encabezado (solicitante,
// centro de costo, proyecto y justificación). Su Status es derivado de las líneas
// y se recalcula tras cada transición de línea; nunca se confía en un agregado viejo.
type Package struct {
	ID            string
	UserID        string
	CostCenter    string
	Project       string
	Justification string
	Status        string // pending, approved, rejected, partially_approved
	CreatedAt     time.Time

	UserName  string
	ItemCount int
}

// PackageItem es una línea de un paquete: referencia un artículo con su propia
// cantidad y su propio estado, resuelto de forma independiente a sus hermanas.
type PackageItem struct {
	ID        string
	PackageID string
	ItemID    string
	Quantity  int
	Status    string // pending, approved, rejected
	Notes     string

	ItemName string
}

// ComputePackageStatus deriva el estado agregado de un paquete desde los estados
// de sus líneas:
//
//	todas pending                               -> pending
//	todas approved                              -> approved
//	todas rejected                              -> rejected
//	terminales mezcladas sin pendientes         -> partially_approved
//	cualquier mezcla con alguna pending         -> pending
//
// Un paquete sin líneas no existe por validación; se devuelve pending por seguridad.
func ComputePackageStatus(lineStatuses []string) string {
	if len(lineStatuses) == 0 {
		return StatusPending
	}
	var approved, rejected, pending int
	for _, s := range lineStatuses {
		switch s {
		case StatusApproved:
			approved++
		case StatusRejected:
			rejected++
		default:
			pending++
		}
	}
	switch {
	case pending > 0:
		return StatusPending
	case approved == len(lineStatuses):
		return StatusApproved
	case rejected == len(lineStatuses):
		return StatusRejected
	default:
		return PackageStatusPartial
	}
}
