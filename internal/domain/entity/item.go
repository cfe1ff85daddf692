package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del almacén con su cantidad disponible y umbrales de reposición.
// Quantity nunca es negativa: solo se descuenta vía el decremento condicional del repositorio,
// que re-verifica suficiencia en el momento de escribir.
type Item struct {
	ID          string
	Name        string
	Serial      string
	Description string
	Origin      string
	Destination string
	Value       decimal.Decimal // valor monetario unitario
	InvoiceRef  string          // número de factura de compra
	Quantity    int
	Minimum     int // umbral mínimo antes de reposición
	Ideal       int // nivel ideal de stock
	Notes       string
	CreatedAt   time.Time
}
