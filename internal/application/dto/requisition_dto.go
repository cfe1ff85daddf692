package dto

import "time"

// CreateRequisitionRequest entrada para crear una requisición de un solo artículo.
// Todos los campos son obligatorios.
type CreateRequisitionRequest struct {
	ItemID        string `json:"item_id" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	CostCenter    string `json:"cost_center" validate:"required"`
	Project       string `json:"project" validate:"required"`
	Justification string `json:"justification" validate:"required"`
}

// RejectRequest motivo opcional de rechazo.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// RequisitionResponse salida de una requisición con nombres resueltos por JOIN.
type RequisitionResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	ItemID        string    `json:"item_id"`
	ItemName      string    `json:"item_name,omitempty"`
	Quantity      int       `json:"quantity"`
	CostCenter    string    `json:"cost_center"`
	Project       string    `json:"project"`
	Justification string    `json:"justification"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
