package repository

import "context"

// ActivitySummary resumen de actividad para el dashboard: la actividad más su
// conteo de reservas (enrolled).
type ActivitySummary struct {
	ID            int64
	Name          string
	Description   string
	Type          string
	Location      string
	ImageURL      string
	Capacity      int
	EnrolledCount int
	CreatedAt     string
}

// DashboardRepository consultas agregadas del dashboard.
type DashboardRepository interface {
	// RecentActivities actividades más recientes con conteo de reservas.
	RecentActivities(ctx context.Context, limit int) ([]ActivitySummary, error)
}
