package repository

import (
	"context"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// NotificationRepository persistencia del feed de notificaciones por usuario.
// A diferencia de las demás entidades no se pagina: el feed completo del usuario
// se carga ordenado por created_at descendente.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Insert(ctx context.Context, n *entity.Notification) error
	MarkRead(ctx context.Context, id int64, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id int64, userID string) error
	DeleteRead(ctx context.Context, userID string) error
}
