package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

var orderSearchCols = []string{"product_name", "buyer_name", "buyer_email"}

const orderCols = `id, product_id, product_name, quantity, total_price, COALESCE(user_id::text, ''), buyer_name, COALESCE(buyer_email, ''), order_status, created_at, updated_at`

func (r *OrderRepo) Table() string { return "orders" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *OrderRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Order, int, error) {
	where, args := listWhere(q.Search, orderSearchCols, "user_id = $%d", q.OwnerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderCols + ` FROM orders` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.Quantity, &o.TotalPrice, &o.UserID, &o.BuyerName, &o.BuyerEmail, &o.OrderStatus, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// GetByID obtiene un pedido por ID. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.ProductID, &o.ProductName, &o.Quantity, &o.TotalPrice, &o.UserID, &o.BuyerName, &o.BuyerEmail, &o.OrderStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// Insert persiste un pedido nuevo.
func (r *OrderRepo) Insert(ctx context.Context, o *entity.Order) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO orders (product_id, product_name, quantity, total_price, user_id, buyer_name, buyer_email, order_status)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, NULLIF($7, ''), $8)
		RETURNING id, created_at, updated_at`,
		o.ProductID, o.ProductName, o.Quantity, o.TotalPrice, o.UserID, o.BuyerName, o.BuyerEmail, o.OrderStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Update solo cambia el estado; el resto del pedido es inmutable tras crearse.
func (r *OrderRepo) Update(ctx context.Context, id int64, o *entity.Order) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET order_status = $2, updated_at = now() WHERE id = $1`,
		id, o.OrderStatus,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina un pedido por ID.
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
