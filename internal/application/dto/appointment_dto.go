package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// AppointmentRequest entrada para crear o actualizar una cita de asesoría.
type AppointmentRequest struct {
	FullName        string `json:"full_name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"required,email"`
	ContactNumber   string `json:"contact_number" validate:"required"`
	AppointmentType string `json:"appointment_type" validate:"required"`
	Date            string `json:"date" validate:"required"` // YYYY-MM-DD
	Time            string `json:"time" validate:"required"` // HH:MM
	Note            string `json:"note"`
}

// AppointmentStatusRequest cambio de estado de una cita (solo admin).
type AppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	ContactNumber   string    `json:"contact_number"`
	AppointmentType string    `json:"appointment_type"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Note            string    `json:"note"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToAppointmentResponse mapea la entidad a su DTO de salida.
func ToAppointmentResponse(a entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		FullName:        a.FullName,
		Email:           a.Email,
		ContactNumber:   a.ContactNumber,
		AppointmentType: a.AppointmentType,
		Date:            a.Date,
		Time:            a.Time,
		Note:            a.Note,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
