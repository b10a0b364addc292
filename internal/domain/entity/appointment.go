package entity

import "time"

// Appointment cita de asesoría agrícola solicitada por un usuario.
type Appointment struct {
	ID              int64
	UserID          string
	FullName        string
	Email           string
	ContactNumber   string
	AppointmentType string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	Note            string
	Status          string // pending, confirmed, cancelled
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
