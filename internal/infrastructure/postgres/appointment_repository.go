package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL (usable con pool o tx).
// Los listados con OwnerID filtran user_id = OwnerID (llamantes no admin).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

var appointmentSearchCols = []string{"full_name", "email", "appointment_type"}

const appointmentCols = `id, user_id::text, full_name, email, contact_number, appointment_type, date, time, COALESCE(note, ''), status, created_at, updated_at`

func (r *AppointmentRepo) Table() string { return "appointments" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *AppointmentRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Appointment, int, error) {
	where, args := listWhere(q.Search, appointmentSearchCols, "user_id = $%d", q.OwnerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	query := `SELECT ` + appointmentCols + ` FROM appointments` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var list []entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Email, &a.ContactNumber, &a.AppointmentType, &a.Date, &a.Time, &a.Note, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// GetByID obtiene una cita por ID. Devuelve nil si no existe.
func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	var a entity.Appointment
	err := r.q.QueryRow(ctx, `SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id).
		Scan(&a.ID, &a.UserID, &a.FullName, &a.Email, &a.ContactNumber, &a.AppointmentType, &a.Date, &a.Time, &a.Note, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// Insert persiste una cita nueva.
func (r *AppointmentRepo) Insert(ctx context.Context, a *entity.Appointment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO appointments (user_id, full_name, email, contact_number, appointment_type, date, time, note, status)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		RETURNING id, created_at, updated_at`,
		a.UserID, a.FullName, a.Email, a.ContactNumber, a.AppointmentType, a.Date, a.Time, a.Note, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// Update aplica los campos editables; updated_at lo fija el servidor.
func (r *AppointmentRepo) Update(ctx context.Context, id int64, a *entity.Appointment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE appointments
		SET full_name = $2, email = $3, contact_number = $4, appointment_type = $5, date = $6, time = $7, note = NULLIF($8, ''), status = $9, updated_at = now()
		WHERE id = $1`,
		id, a.FullName, a.Email, a.ContactNumber, a.AppointmentType, a.Date, a.Time, a.Note, a.Status,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// Delete elimina una cita por ID.
func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}
