package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// TrainingRequest entrada para crear o actualizar una capacitación. Topics
// llega como valores repetidos del formulario.
type TrainingRequest struct {
	Name          string    `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description   string    `json:"description" form:"description"`
	Location      string    `json:"location" form:"location"`
	StartDateTime time.Time `json:"start_date_time" form:"start_date_time" validate:"required"`
	EndDateTime   time.Time `json:"end_date_time" form:"end_date_time" validate:"required"`
	Topics        []string  `json:"topics" form:"topics"`
	Capacity      int       `json:"capacity" form:"capacity" validate:"min=0"`
}

// TrainingResponse salida de una capacitación.
type TrainingResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Topics        []string  `json:"topics"`
	Capacity      int       `json:"capacity"`
	ImageURL      string    `json:"image_url"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToTrainingResponse mapea la entidad a su DTO de salida.
func ToTrainingResponse(t entity.Training) TrainingResponse {
	topics := t.Topics
	if topics == nil {
		topics = []string{}
	}
	return TrainingResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Location:      t.Location,
		StartDateTime: t.StartDateTime,
		EndDateTime:   t.EndDateTime,
		Topics:        topics,
		Capacity:      t.Capacity,
		ImageURL:      t.ImageURL,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// RegistrationRequest entrada para inscribirse a una capacitación.
type RegistrationRequest struct {
	TrainingID   int64  `json:"training_id" validate:"required"`
	TrainingName string `json:"training_name" validate:"required"`
}

// RegistrationStatusRequest cambio de estado de una inscripción (solo admin).
type RegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// RegistrationResponse salida de una inscripción.
type RegistrationResponse struct {
	ID           int64     `json:"id"`
	TrainingID   int64     `json:"training_id"`
	TrainingName string    `json:"training_name"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToRegistrationResponse mapea la entidad a su DTO de salida.
func ToRegistrationResponse(r entity.TrainingRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:           r.ID,
		TrainingID:   r.TrainingID,
		TrainingName: r.TrainingName,
		UserID:       r.UserID,
		UserName:     r.UserName,
		UserEmail:    r.UserEmail,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
