package entity

import "time"

// Estados válidos para reservas, citas y registros a capacitaciones.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking reserva de un usuario sobre una actividad. Los campos UserName/UserEmail
// se desnormalizan al crear para que el listado admin no requiera joins.
type Booking struct {
	ID           int64
	ActivityID   int64
	ActivityName string
	UserID       string
	UserName     string
	UserEmail    string
	BookingDate  time.Time
	Status       string // pending, confirmed, cancelled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
