package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Order.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order pedido de un usuario sobre un producto. BuyerName/BuyerEmail se
// desnormalizan desde la identidad al crear.
type Order struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	TotalPrice  decimal.Decimal
	UserID      string
	BuyerName   string
	BuyerEmail  string
	OrderStatus string // pending, confirmed, completed, cancelled
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
