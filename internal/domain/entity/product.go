package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto de la granja a la venta en el portal.
// Stock se decrementa al confirmar un pedido (misma transacción que el insert del pedido).
type Product struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Stock       int
	Images      []string // URLs públicas en el bucket de productos
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
