package dto

import (
	"time"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Route     string         `json:"route,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationFeedResponse feed completo del usuario con el contador de no leídas.
type NotificationFeedResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
}

// ToNotificationResponse mapea la entidad a su DTO de salida.
func ToNotificationResponse(n entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		Route:     n.Route,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
