package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// ActivityRequest entrada para crear o actualizar una actividad.
type ActivityRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" form:"description"`
	Type        string `json:"type" form:"type" validate:"required"`
	Capacity    int    `json:"capacity" form:"capacity" validate:"min=0"`
	Location    string `json:"location" form:"location"`
}

// ActivityResponse salida de una actividad.
type ActivityResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToActivityResponse mapea la entidad a su DTO de salida.
func ToActivityResponse(a entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Type:        a.Type,
		Capacity:    a.Capacity,
		Location:    a.Location,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
