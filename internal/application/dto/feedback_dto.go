package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// FeedbackRequest entrada para crear o actualizar un feedback.
type FeedbackRequest struct {
	Profession   string `json:"profession"`
	FeedbackType string `json:"feedback_type" validate:"required,oneof=general product"`
	Product      string `json:"product" validate:"required_if=FeedbackType product"`
	Message      string `json:"message" validate:"required,min=1"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	IsPublic     bool   `json:"is_public"`
}

// FeedbackResponse salida de un feedback.
type FeedbackResponse struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	Profession   string    `json:"profession"`
	FeedbackType string    `json:"feedback_type"`
	Product      string    `json:"product"`
	Message      string    `json:"message"`
	Rating       int       `json:"rating"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RatingSummaryResponse resumen de valoraciones: positivas (>= 4) vs negativas.
type RatingSummaryResponse struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

// ToFeedbackResponse mapea la entidad a su DTO de salida.
func ToFeedbackResponse(f entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		UserName:     f.UserName,
		UserEmail:    f.UserEmail,
		Profession:   f.Profession,
		FeedbackType: f.FeedbackType,
		Product:      f.Product,
		Message:      f.Message,
		Rating:       f.Rating,
		IsPublic:     f.IsPublic,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
