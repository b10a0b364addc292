package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// OrderRequest entrada para crear un pedido. El precio total se calcula en el
// servidor a partir del producto; el cliente solo indica qué y cuánto.
type OrderRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// OrderStatusRequest cambio de estado de un pedido (solo admin).
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	UserID      string          `json:"user_id"`
	BuyerName   string          `json:"buyer_name"`
	BuyerEmail  string          `json:"buyer_email"`
	OrderStatus string          `json:"order_status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToOrderResponse mapea la entidad a su DTO de salida.
func ToOrderResponse(o entity.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		TotalPrice:  o.TotalPrice,
		UserID:      o.UserID,
		BuyerName:   o.BuyerName,
		BuyerEmail:  o.BuyerEmail,
		OrderStatus: o.OrderStatus,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
