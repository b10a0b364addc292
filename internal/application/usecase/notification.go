package usecase

import (
	"context"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

// NotificationUseCase operaciones del feed de notificaciones del usuario
// autenticado. Cada operación lleva el userID del token: nadie toca feeds ajenos.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// Feed devuelve el feed completo del usuario con el contador de no leídas.
func (uc *NotificationUseCase) Feed(ctx context.Context, userID string) (*dto.NotificationFeedResponse, error) {
	items, err := uc.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := uc.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.ToNotificationResponse(n))
	}
	return &dto.NotificationFeedResponse{Items: out, UnreadCount: unread}, nil
}

// MarkRead marca como leída una notificación del usuario.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id int64, userID string) error {
	return uc.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead marca como leídas todas las notificaciones del usuario.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notifications.MarkAllRead(ctx, userID)
}

// Delete elimina una notificación del usuario.
func (uc *NotificationUseCase) Delete(ctx context.Context, id int64, userID string) error {
	return uc.notifications.Delete(ctx, id, userID)
}

// DeleteRead elimina todas las notificaciones leídas del usuario.
func (uc *NotificationUseCase) DeleteRead(ctx context.Context, userID string) error {
	return uc.notifications.DeleteRead(ctx, userID)
}
