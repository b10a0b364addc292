package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
// Stock solo se modifica vía DecrementStock (pedidos); Update no lo toca.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

var productSearchCols = []string{"name", "category", "description"}

const productCols = `id, name, category, COALESCE(description, ''), price, stock, COALESCE(images, '{}'), COALESCE(created_by::text, ''), created_at, updated_at`

func (r *ProductRepo) Table() string { return "products" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *ProductRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Product, int, error) {
	where, args := listWhere(q.Search, productSearchCols, "", "")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productCols + ` FROM products` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.Stock, &p.Images, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.Stock, &p.Images, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Insert persiste un producto nuevo.
func (r *ProductRepo) Insert(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, category, description, price, stock, images, created_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, '')::uuid)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Category, p.Description, p.Price, p.Stock, p.Images, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update aplica los campos editables (incluidas las imágenes); no toca Stock.
func (r *ProductRepo) Update(ctx context.Context, id int64, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products
		SET name = $2, category = $3, description = NULLIF($4, ''), price = $5, images = $6, updated_at = now()
		WHERE id = $1`,
		id, p.Name, p.Category, p.Description, p.Price, p.Images,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DecrementStock descuenta unidades de forma atómica. La condición stock >= $2
// evita stock negativo: cero filas afectadas significa stock insuficiente.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
