package usecase

import (
	"context"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

// DashboardUseCase datos agregados del dashboard: carrusel activo y actividades
// recientes con su ocupación.
type DashboardUseCase struct {
	carousel  repository.CarouselRepository
	dashboard repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(carousel repository.CarouselRepository, dashboard repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{carousel: carousel, dashboard: dashboard}
}

// Overview arma la vista del dashboard. limit acota las actividades recientes.
func (uc *DashboardUseCase) Overview(ctx context.Context, limit int) (*dto.DashboardResponse, error) {
	if limit <= 0 {
		limit = 6
	}

	slides, err := uc.carousel.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := uc.dashboard.RecentActivities(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		Carousel:         make([]dto.CarouselSlideResponse, 0, len(slides)),
		RecentActivities: make([]dto.ActivitySummaryResponse, 0, len(activities)),
	}
	for _, s := range slides {
		out.Carousel = append(out.Carousel, dto.ToCarouselSlideResponse(s))
	}
	for _, a := range activities {
		out.RecentActivities = append(out.RecentActivities, dto.ToActivitySummaryResponse(a))
	}
	return out, nil
}

// ReorderCarousel fija el orden del carrusel según los IDs recibidos.
func (uc *DashboardUseCase) ReorderCarousel(ctx context.Context, slideIDs []int64) error {
	return uc.carousel.UpdateOrder(ctx, slideIDs)
}
