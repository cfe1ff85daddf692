package dto

import "time"

// TransferVersion versión del formato del paquete de exportación.
const TransferVersion = "1.0"

// ExportBundle formato de transferencia de datos entre instancias: artículos más
// los movimientos de la ventana reciente, con etiqueta de versión del esquema.
type ExportBundle struct {
	Version    string             `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Items      []ItemResponse     `json:"items"`
	Movements  []MovementResponse `json:"movements"`
}

// ImportResult conteos de la importación (reemplazo total dentro de una transacción).
type ImportResult struct {
	ItemsImported     int `json:"items_imported"`
	MovementsImported int `json:"movements_imported"`
}
