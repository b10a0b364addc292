package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

// CarouselSlideRequest entrada para crear o actualizar una lámina del carrusel.
type CarouselSlideRequest struct {
	Title    string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Subtitle string `json:"subtitle" form:"subtitle"`
	IsActive bool   `json:"is_active" form:"is_active"`
}

// CarouselOrderRequest nuevo orden del carrusel: IDs en el orden deseado.
type CarouselOrderRequest struct {
	SlideIDs []int64 `json:"slide_ids" validate:"required,min=1"`
}

// CarouselSlideResponse salida de una lámina.
type CarouselSlideResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	ImageURL   string    `json:"image_url"`
	OrderIndex int       `json:"order_index"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToCarouselSlideResponse mapea la entidad a su DTO de salida.
func ToCarouselSlideResponse(s entity.CarouselSlide) CarouselSlideResponse {
	return CarouselSlideResponse{
		ID:         s.ID,
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		ImageURL:   s.ImageURL,
		OrderIndex: s.OrderIndex,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ActivitySummaryResponse actividad reciente con su conteo de reservas.
type ActivitySummaryResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Location      string `json:"location"`
	ImageURL      string `json:"image_url"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolled_count"`
	CreatedAt     string `json:"created_at"`
}

// DashboardResponse datos agregados del dashboard: carrusel activo y
// actividades recientes con ocupación.
type DashboardResponse struct {
	Carousel         []CarouselSlideResponse   `json:"carousel"`
	RecentActivities []ActivitySummaryResponse `json:"recent_activities"`
}

// ToActivitySummaryResponse mapea el resumen del repositorio a su DTO.
func ToActivitySummaryResponse(s repository.ActivitySummary) ActivitySummaryResponse {
	return ActivitySummaryResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Type:          s.Type,
		Location:      s.Location,
		ImageURL:      s.ImageURL,
		Capacity:      s.Capacity,
		EnrolledCount: s.EnrolledCount,
		CreatedAt:     s.CreatedAt,
	}
}
