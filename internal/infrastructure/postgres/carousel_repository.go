package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.CarouselRepository = (*CarouselRepo)(nil)

// CarouselRepo implementación de CarouselRepository sobre PostgreSQL.
// El listado administrativo ordena por order_index ascendente, no por fecha.
type CarouselRepo struct {
	q Querier
}

// NewCarouselRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCarouselRepository(q Querier) *CarouselRepo {
	return &CarouselRepo{q: q}
}

var carouselSearchCols = []string{"title", "subtitle"}

const carouselCols = `id, title, COALESCE(subtitle, ''), image_url, order_index, is_active, COALESCE(created_by::text, ''), created_at, updated_at`

func (r *CarouselRepo) Table() string { return "carousel_slides" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *CarouselRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.CarouselSlide, int, error) {
	where, args := listWhere(q.Search, carouselSearchCols, "", "")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM carousel_slides`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count carousel slides: %w", err)
	}

	query := `SELECT ` + carouselCols + ` FROM carousel_slides` + where + windowSuffix("order_index ASC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list carousel slides: %w", err)
	}
	defer rows.Close()

	var list []entity.CarouselSlide
	for rows.Next() {
		var s entity.CarouselSlide
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.OrderIndex, &s.IsActive, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan carousel slide: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// GetByID obtiene una lámina por ID. Devuelve nil si no existe.
func (r *CarouselRepo) GetByID(ctx context.Context, id int64) (*entity.CarouselSlide, error) {
	var s entity.CarouselSlide
	err := r.q.QueryRow(ctx, `SELECT `+carouselCols+` FROM carousel_slides WHERE id = $1`, id).
		Scan(&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.OrderIndex, &s.IsActive, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carousel slide: %w", err)
	}
	return &s, nil
}

// Insert persiste una lámina nueva al final del orden actual.
func (r *CarouselRepo) Insert(ctx context.Context, s *entity.CarouselSlide) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO carousel_slides (title, subtitle, image_url, order_index, is_active, created_by)
		VALUES ($1, NULLIF($2, ''), $3,
		        (SELECT COALESCE(MAX(order_index), -1) + 1 FROM carousel_slides),
		        $4, NULLIF($5, '')::uuid)
		RETURNING id, order_index, created_at, updated_at`,
		s.Title, s.Subtitle, s.ImageURL, s.IsActive, s.CreatedBy,
	).Scan(&s.ID, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert carousel slide: %w", err)
	}
	return nil
}

// Update aplica los campos editables; el orden se cambia con UpdateOrder.
func (r *CarouselRepo) Update(ctx context.Context, id int64, s *entity.CarouselSlide) error {
	_, err := r.q.Exec(ctx, `
		UPDATE carousel_slides
		SET title = $2, subtitle = NULLIF($3, ''), image_url = $4, is_active = $5, updated_at = now()
		WHERE id = $1`,
		id, s.Title, s.Subtitle, s.ImageURL, s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update carousel slide: %w", err)
	}
	return nil
}

// Delete elimina una lámina por ID.
func (r *CarouselRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM carousel_slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete carousel slide: %w", err)
	}
	return nil
}

// ListActive devuelve las láminas visibles del carrusel, por order_index ascendente.
func (r *CarouselRepo) ListActive(ctx context.Context) ([]entity.CarouselSlide, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+carouselCols+` FROM carousel_slides WHERE is_active = TRUE ORDER BY order_index ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active carousel slides: %w", err)
	}
	defer rows.Close()

	var list []entity.CarouselSlide
	for rows.Next() {
		var s entity.CarouselSlide
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.OrderIndex, &s.IsActive, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan carousel slide: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateOrder fija order_index = posición de cada ID en el orden recibido.
// Una sola sentencia con unnest evita N round-trips.
func (r *CarouselRepo) UpdateOrder(ctx context.Context, slideIDs []int64) error {
	if len(slideIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		UPDATE carousel_slides AS c
		SET order_index = o.idx - 1, updated_at = now()
		FROM unnest($1::bigint[]) WITH ORDINALITY AS o(id, idx)
		WHERE c.id = o.id`,
		slideIDs,
	)
	if err != nil {
		return fmt.Errorf("update carousel order: %w", err)
	}
	return nil
}
