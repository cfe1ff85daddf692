package entity

import "time"

// Tipos de movimiento de almacén.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement es el registro de auditoría de cada cambio de stock. Solo se agrega:
// nunca se actualiza ni se borra en operación normal.
// ItemName es un snapshot desnormalizado para que el historial sobreviva al artículo.
type Movement struct {
	ID          string
	ItemID      string
	ItemName    string
	Type        string // IN, OUT
	Quantity    int    // siempre positivo; el signo lo da Type
	Destination string
	Description string
	CreatedAt   time.Time
}
