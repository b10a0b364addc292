package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.RegistrationRepository = (*RegistrationRepo)(nil)

// RegistrationRepo implementación de RegistrationRepository sobre PostgreSQL.
type RegistrationRepo struct {
	q Querier
}

// NewRegistrationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegistrationRepository(q Querier) *RegistrationRepo {
	return &RegistrationRepo{q: q}
}

var registrationSearchCols = []string{"training_name", "user_name", "user_email"}

const registrationCols = `id, training_id, training_name, COALESCE(user_id::text, ''), user_name, COALESCE(user_email, ''), status, created_at, updated_at`

func (r *RegistrationRepo) Table() string { return "training_registrations" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *RegistrationRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.TrainingRegistration, int, error) {
	where, args := listWhere(q.Search, registrationSearchCols, "user_id = $%d", q.OwnerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM training_registrations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	query := `SELECT ` + registrationCols + ` FROM training_registrations` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var list []entity.TrainingRegistration
	for rows.Next() {
		var reg entity.TrainingRegistration
		if err := rows.Scan(&reg.ID, &reg.TrainingID, &reg.TrainingName, &reg.UserID, &reg.UserName, &reg.UserEmail, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan registration: %w", err)
		}
		list = append(list, reg)
	}
	return list, total, rows.Err()
}

// GetByID obtiene una inscripción por ID. Devuelve nil si no existe.
func (r *RegistrationRepo) GetByID(ctx context.Context, id int64) (*entity.TrainingRegistration, error) {
	var reg entity.TrainingRegistration
	err := r.q.QueryRow(ctx, `SELECT `+registrationCols+` FROM training_registrations WHERE id = $1`, id).
		Scan(&reg.ID, &reg.TrainingID, &reg.TrainingName, &reg.UserID, &reg.UserName, &reg.UserEmail, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return &reg, nil
}

// Insert persiste una inscripción nueva.
func (r *RegistrationRepo) Insert(ctx context.Context, reg *entity.TrainingRegistration) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO training_registrations (training_id, training_name, user_id, user_name, user_email, status)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at, updated_at`,
		reg.TrainingID, reg.TrainingName, reg.UserID, reg.UserName, reg.UserEmail, reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// Update solo cambia el estado de la inscripción.
func (r *RegistrationRepo) Update(ctx context.Context, id int64, reg *entity.TrainingRegistration) error {
	_, err := r.q.Exec(ctx,
		`UPDATE training_registrations SET status = $2, updated_at = now() WHERE id = $1`,
		id, reg.Status,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	return nil
}

// Delete elimina una inscripción por ID.
func (r *RegistrationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM training_registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}
