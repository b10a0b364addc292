package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository sobre PostgreSQL (usable con pool o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

var activitySearchCols = []string{"name", "description", "type"}

const activityCols = `id, name, description, COALESCE(image_url, ''), type, capacity, location, COALESCE(created_by::text, ''), created_at, updated_at`

func (r *ActivityRepo) Table() string { return "activities" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *ActivityRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Activity, int, error) {
	where, args := listWhere(q.Search, activitySearchCols, "", "")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM activities`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	query := `SELECT ` + activityCols + ` FROM activities` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.ImageURL, &a.Type, &a.Capacity, &a.Location, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// GetByID obtiene una actividad por ID. Devuelve nil si no existe.
func (r *ActivityRepo) GetByID(ctx context.Context, id int64) (*entity.Activity, error) {
	var a entity.Activity
	err := r.q.QueryRow(ctx, `SELECT `+activityCols+` FROM activities WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Description, &a.ImageURL, &a.Type, &a.Capacity, &a.Location, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return &a, nil
}

// Insert persiste una actividad nueva. ID y timestamps los asigna el servidor.
func (r *ActivityRepo) Insert(ctx context.Context, a *entity.Activity) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO activities (name, description, image_url, type, capacity, location, created_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, '')::uuid)
		RETURNING id, created_at, updated_at`,
		a.Name, a.Description, a.ImageURL, a.Type, a.Capacity, a.Location, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Update aplica los campos editables; updated_at lo fija el servidor.
func (r *ActivityRepo) Update(ctx context.Context, id int64, a *entity.Activity) error {
	_, err := r.q.Exec(ctx, `
		UPDATE activities
		SET name = $2, description = $3, image_url = NULLIF($4, ''), type = $5, capacity = $6, location = $7, updated_at = now()
		WHERE id = $1`,
		id, a.Name, a.Description, a.ImageURL, a.Type, a.Capacity, a.Location,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// Delete elimina una actividad por ID.
func (r *ActivityRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
