package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento manual de almacén.
// Type IN suma stock; Type OUT lo descuenta con verificación de suficiencia.
type RegisterMovementRequest struct {
	ItemID      string `json:"item_id" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Destination string `json:"destination"`
	Description string `json:"description"`
}

// MovementResponse salida de un movimiento del historial.
type MovementResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
