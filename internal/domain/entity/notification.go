package entity

import "time"

// Notification notificación dirigida a un usuario concreto.
// Data transporta contexto arbitrario (JSON) y Route la vista destino en el cliente.
type Notification struct {
	ID        int64
	UserID    string
	Type      string // new_booking, order_status_update, new_feedback, ...
	Title     string
	Message   string
	Data      map[string]any
	Route     string
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
