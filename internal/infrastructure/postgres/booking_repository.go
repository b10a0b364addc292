package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación de BookingRepository sobre PostgreSQL (usable con pool o tx).
// Los listados con OwnerID filtran user_id = OwnerID (llamantes no admin).
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

var bookingSearchCols = []string{"activity_name", "user_name", "user_email"}

const bookingCols = `id, activity_id, activity_name, user_id::text, user_name, user_email, booking_date, status, created_at, updated_at`

func (r *BookingRepo) Table() string { return "bookings" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *BookingRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Booking, int, error) {
	where, args := listWhere(q.Search, bookingSearchCols, "user_id = $%d", q.OwnerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := `SELECT ` + bookingCols + ` FROM bookings` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var list []entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.ActivityID, &b.ActivityName, &b.UserID, &b.UserName, &b.UserEmail, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

// GetByID obtiene una reserva por ID. Devuelve nil si no existe.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	var b entity.Booking
	err := r.q.QueryRow(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id).
		Scan(&b.ID, &b.ActivityID, &b.ActivityName, &b.UserID, &b.UserName, &b.UserEmail, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// Insert persiste una reserva nueva con la atribución ya estampada por el caso de uso.
func (r *BookingRepo) Insert(ctx context.Context, b *entity.Booking) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO bookings (activity_id, activity_name, user_id, user_name, user_email, booking_date, status)
		VALUES ($1, $2, $3::uuid, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		b.ActivityID, b.ActivityName, b.UserID, b.UserName, b.UserEmail, b.BookingDate, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// Update solo permite cambiar fecha y estado; la atribución es inmutable.
func (r *BookingRepo) Update(ctx context.Context, id int64, b *entity.Booking) error {
	_, err := r.q.Exec(ctx, `
		UPDATE bookings SET booking_date = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, b.BookingDate, b.Status,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// Delete elimina una reserva por ID.
func (r *BookingRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
