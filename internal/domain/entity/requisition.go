package entity

import "time"

// Estados de una requisición y de cada línea de un paquete.
// pending es el estado inicial; approved y rejected son terminales, sin reapertura.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Requisition es una solicitud de un solo artículo que requiere aprobación de un admin.
// UserName e ItemName se rellenan en lecturas con JOIN; no se persisten en la tabla.
type Requisition struct {
	ID            string
	UserID        string
	ItemID        string
	Quantity      int
	CostCenter    string
	Project       string
	Justification string
	Status        string // pending, approved, rejected
	Notes         string // observaciones de resolución
	CreatedAt     time.Time

	UserName string
	ItemName string
}

// IsResolved indica si la requisición ya alcanzó un estado terminal.
func (r *Requisition) IsResolved() bool {
	return r.Status != StatusPending
}
