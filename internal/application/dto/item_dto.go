package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo. Quantity, Minimum e Ideal
// parten en 0 si no se envían.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Serial      string          `json:"serial"`
	Description string          `json:"description"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Value       decimal.Decimal `json:"value"`
	InvoiceRef  string          `json:"invoice_ref"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Minimum     int             `json:"minimum" validate:"min=0"`
	Ideal       int             `json:"ideal" validate:"min=0"`
	Notes       string          `json:"notes"`
}

// SetQuantityRequest entrada para fijar la cantidad absoluta de un artículo.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Serial      string          `json:"serial"`
	Description string          `json:"description"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Value       decimal.Decimal `json:"value"`
	InvoiceRef  string          `json:"invoice_ref"`
	Quantity    int             `json:"quantity"`
	Minimum     int             `json:"minimum"`
	Ideal       int             `json:"ideal"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}
