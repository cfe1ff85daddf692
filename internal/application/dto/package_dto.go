package dto

import "time"

// PackageLineRequest una línea de un paquete: artículo y cantidad solicitada.
type PackageLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreatePackageRequest entrada para crear un paquete multi-artículo.
// El encabezado es obligatorio y la lista de líneas no puede ser vacía.
type CreatePackageRequest struct {
	CostCenter    string               `json:"cost_center" validate:"required"`
	Project       string               `json:"project" validate:"required"`
	Justification string               `json:"justification" validate:"required"`
	Items         []PackageLineRequest `json:"items" validate:"required,min=1,dive"`
}

// PackageResponse salida de un paquete con su estado agregado derivado.
type PackageResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	CostCenter    string    `json:"cost_center"`
	Project       string    `json:"project"`
	Justification string    `json:"justification"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"item_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PackageItemResponse salida de una línea de paquete.
type PackageItemResponse struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

// LineError error por línea durante una operación masiva (identificada por nombre de artículo).
type LineError struct {
	ItemName string `json:"item_name"`
	Reason   string `json:"reason"`
}

// BulkResolveResponse resultado de aprobar/rechazar todas las líneas pendientes.
// La aprobación masiva es best-effort: Success es true aunque haya líneas
// saltadas por stock insuficiente; esas quedan reportadas en Errors.
type BulkResolveResponse struct {
	Success  bool        `json:"success"`
	Resolved int         `json:"resolved"`
	Status   string      `json:"status"`
	Errors   []LineError `json:"errors,omitempty"`
}
