package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.AnnouncementRepository = (*AnnouncementRepo)(nil)

// AnnouncementRepo implementación de AnnouncementRepository sobre PostgreSQL (usable con pool o tx).
type AnnouncementRepo struct {
	q Querier
}

// NewAnnouncementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnnouncementRepository(q Querier) *AnnouncementRepo {
	return &AnnouncementRepo{q: q}
}

var announcementSearchCols = []string{"title", "description"}

const announcementCols = `id, title, description, duration, COALESCE(image_url, ''), COALESCE(created_by::text, ''), created_at, updated_at`

// Table nombre de la tabla (para el binding realtime).
func (r *AnnouncementRepo) Table() string { return "announcements" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *AnnouncementRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Announcement, int, error) {
	where, args := listWhere(q.Search, announcementSearchCols, "", "")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}

	query := `SELECT ` + announcementCols + ` FROM announcements` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var list []entity.Announcement
	for rows.Next() {
		var a entity.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Duration, &a.ImageURL, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan announcement: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// GetByID obtiene un aviso por ID. Devuelve nil si no existe.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id int64) (*entity.Announcement, error) {
	var a entity.Announcement
	err := r.q.QueryRow(ctx, `SELECT `+announcementCols+` FROM announcements WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Duration, &a.ImageURL, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	return &a, nil
}

// Insert persiste un aviso nuevo. ID y timestamps los asigna el servidor.
func (r *AnnouncementRepo) Insert(ctx context.Context, a *entity.Announcement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO announcements (title, description, duration, image_url, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, '')::uuid)
		RETURNING id, created_at, updated_at`,
		a.Title, a.Description, a.Duration, a.ImageURL, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// Update aplica los campos editables; updated_at lo fija el servidor.
func (r *AnnouncementRepo) Update(ctx context.Context, id int64, a *entity.Announcement) error {
	_, err := r.q.Exec(ctx, `
		UPDATE announcements
		SET title = $2, description = $3, duration = $4, image_url = NULLIF($5, ''), updated_at = now()
		WHERE id = $1`,
		id, a.Title, a.Description, a.Duration, a.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return nil
}

// Delete elimina un aviso por ID.
func (r *AnnouncementRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
