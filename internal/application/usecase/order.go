package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/jwt"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// OrderTxRunner ejecuta la creación de pedidos dentro de una transacción con
// repos atados a ella: insertar el pedido y descontar stock son atómicos.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// OrderUseCase casos de uso de pedidos: creación transaccional con descuento
// de stock y cambios de estado con notificación al comprador.
type OrderUseCase struct {
	orders   repository.OrderRepository
	tx       OrderTxRunner
	notifier *Notifier
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(orders repository.OrderRepository, tx OrderTxRunner, notifier *Notifier, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, tx: tx, notifier: notifier, log: log}
}

// Create crea un pedido del usuario autenticado. El nombre del producto y el
// precio total salen de la fila del producto dentro de la misma transacción que
// descuenta el stock; si el stock no alcanza, nada se persiste.
func (uc *OrderUseCase) Create(ctx context.Context, ident jwt.Identity, in dto.OrderRequest) (*entity.Order, error) {
	var order *entity.Order
	err := uc.tx.RunOrder(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.DecrementStock(ctx, in.ProductID, in.Quantity); err != nil {
			return err
		}

		order = &entity.Order{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			TotalPrice:  product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			UserID:      ident.UserID,
			BuyerName:   ident.FullName,
			BuyerEmail:  ident.Email,
			OrderStatus: entity.OrderPending,
		}
		return orderRepo.Insert(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyAdmins(ctx, entity.Notification{
		Type:    NotifNewOrder,
		Title:   "Nuevo pedido",
		Message: fmt.Sprintf("%s pidió %d x %s", order.BuyerName, order.Quantity, order.ProductName),
		Data:    map[string]any{"order_id": order.ID, "product_id": order.ProductID},
		Route:   "/admin/orders",
	})
	return order, nil
}

// UpdateStatus cambia el estado de un pedido (solo admin) y notifica al comprador.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	order.OrderStatus = status
	if err := uc.orders.Update(ctx, id, order); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(ctx, order.UserID, entity.Notification{
		Type:    NotifOrderStatus,
		Title:   "Estado de tu pedido",
		Message: fmt.Sprintf("Tu pedido de %s ahora está %s", order.ProductName, status),
		Data:    map[string]any{"order_id": order.ID, "status": status},
		Route:   "/orders",
	})
	return order, nil
}
