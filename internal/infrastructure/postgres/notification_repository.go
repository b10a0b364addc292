package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
// Toda operación de escritura sobre una notificación concreta exige también el
// user_id del dueño: nadie toca notificaciones ajenas.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationCols = `id, user_id::text, type, title, message, COALESCE(data, '{}'::jsonb), COALESCE(route, ''), is_read, created_at, updated_at`

// ListByUser devuelve el feed completo del usuario, más reciente primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+notificationCols+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Data, &n.Route, &n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UnreadCount cuenta las notificaciones sin leer del usuario.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// Insert persiste una notificación nueva.
func (r *NotificationRepo) Insert(ctx context.Context, n *entity.Notification) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, message, data, route)
		VALUES ($1::uuid, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at, updated_at`,
		n.UserID, n.Type, n.Title, n.Message, n.Data, n.Route,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// MarkRead marca como leída una notificación del usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int64, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca como leídas todas las notificaciones del usuario.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = now() WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Delete elimina una notificación del usuario.
func (r *NotificationRepo) Delete(ctx context.Context, id int64, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// DeleteRead elimina todas las notificaciones ya leídas del usuario.
func (r *NotificationRepo) DeleteRead(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM notifications WHERE user_id = $1 AND is_read = TRUE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete read notifications: %w", err)
	}
	return nil
}
