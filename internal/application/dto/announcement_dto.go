package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// AnnouncementRequest entrada para crear o actualizar un aviso. La imagen llega
// como archivo multipart aparte, no en el cuerpo.
type AnnouncementRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" form:"description"`
	Duration    string `json:"duration" form:"duration"`
}

// AnnouncementResponse salida de un aviso.
type AnnouncementResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"image_url"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToAnnouncementResponse mapea la entidad a su DTO de salida.
func ToAnnouncementResponse(a entity.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Duration:    a.Duration,
		ImageURL:    a.ImageURL,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
