package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.TrainingRepository = (*TrainingRepo)(nil)

// TrainingRepo implementación de TrainingRepository sobre PostgreSQL.
// Ordena por fecha de inicio descendente, no por created_at.
type TrainingRepo struct {
	q Querier
}

// NewTrainingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTrainingRepository(q Querier) *TrainingRepo {
	return &TrainingRepo{q: q}
}

var trainingSearchCols = []string{"name", "description", "location"}

const trainingCols = `id, name, COALESCE(description, ''), COALESCE(location, ''), start_date_time, end_date_time, COALESCE(topics, '{}'), capacity, COALESCE(image_url, ''), COALESCE(created_by::text, ''), created_at, updated_at`

func (r *TrainingRepo) Table() string { return "trainings" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *TrainingRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Training, int, error) {
	where, args := listWhere(q.Search, trainingSearchCols, "", "")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM trainings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trainings: %w", err)
	}

	query := `SELECT ` + trainingCols + ` FROM trainings` + where + windowSuffix("start_date_time DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list trainings: %w", err)
	}
	defer rows.Close()

	var list []entity.Training
	for rows.Next() {
		var t entity.Training
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Location, &t.StartDateTime, &t.EndDateTime, &t.Topics, &t.Capacity, &t.ImageURL, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan training: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// GetByID obtiene una capacitación por ID. Devuelve nil si no existe.
func (r *TrainingRepo) GetByID(ctx context.Context, id int64) (*entity.Training, error) {
	var t entity.Training
	err := r.q.QueryRow(ctx, `SELECT `+trainingCols+` FROM trainings WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Location, &t.StartDateTime, &t.EndDateTime, &t.Topics, &t.Capacity, &t.ImageURL, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get training: %w", err)
	}
	return &t, nil
}

// Insert persiste una capacitación nueva.
func (r *TrainingRepo) Insert(ctx context.Context, t *entity.Training) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO trainings (name, description, location, start_date_time, end_date_time, topics, capacity, image_url, created_by)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, '')::uuid)
		RETURNING id, created_at, updated_at`,
		t.Name, t.Description, t.Location, t.StartDateTime, t.EndDateTime, t.Topics, t.Capacity, t.ImageURL, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert training: %w", err)
	}
	return nil
}

// Update aplica los campos editables.
func (r *TrainingRepo) Update(ctx context.Context, id int64, t *entity.Training) error {
	_, err := r.q.Exec(ctx, `
		UPDATE trainings
		SET name = $2, description = NULLIF($3, ''), location = NULLIF($4, ''),
		    start_date_time = $5, end_date_time = $6, topics = $7, capacity = $8,
		    image_url = NULLIF($9, ''), updated_at = now()
		WHERE id = $1`,
		id, t.Name, t.Description, t.Location, t.StartDateTime, t.EndDateTime, t.Topics, t.Capacity, t.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update training: %w", err)
	}
	return nil
}

// Delete elimina una capacitación por ID.
func (r *TrainingRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}
	return nil
}
