package entity

import "time"

// TrainingRegistration inscripción de un usuario a una capacitación.
type TrainingRegistration struct {
	ID           int64
	TrainingID   int64
	TrainingName string
	UserID       string
	UserName     string
	UserEmail    string
	Status       string // pending, confirmed, cancelled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
