package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del dashboard sobre PostgreSQL.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// RecentActivities devuelve las actividades más recientes con su conteo de
// reservas. El conteo sale de un LEFT JOIN para no perder actividades sin reservas.
func (r *DashboardRepo) RecentActivities(ctx context.Context, limit int) ([]repository.ActivitySummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.name, COALESCE(a.description, ''), a.type, COALESCE(a.location, ''),
		       COALESCE(a.image_url, ''), a.capacity, COUNT(b.id), a.created_at::text
		FROM activities a
		LEFT JOIN bookings b ON b.activity_id = a.id AND b.status <> 'cancelled'
		GROUP BY a.id
		ORDER BY a.created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	defer rows.Close()

	var list []repository.ActivitySummary
	for rows.Next() {
		var s repository.ActivitySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Type, &s.Location, &s.ImageURL, &s.Capacity, &s.EnrolledCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
