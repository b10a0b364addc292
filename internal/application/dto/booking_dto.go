package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// BookingRequest entrada para crear una reserva. El usuario sale de la identidad
// del token, nunca del cuerpo.
type BookingRequest struct {
	ActivityID   int64     `json:"activity_id" validate:"required"`
	ActivityName string    `json:"activity_name" validate:"required"`
	BookingDate  time.Time `json:"booking_date" validate:"required"`
}

// BookingStatusRequest cambio de estado de una reserva (solo admin).
type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// BookingResponse salida de una reserva.
type BookingResponse struct {
	ID           int64     `json:"id"`
	ActivityID   int64     `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	BookingDate  time.Time `json:"booking_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToBookingResponse mapea la entidad a su DTO de salida.
func ToBookingResponse(b entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		ActivityID:   b.ActivityID,
		ActivityName: b.ActivityName,
		UserID:       b.UserID,
		UserName:     b.UserName,
		UserEmail:    b.UserEmail,
		BookingDate:  b.BookingDate,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
