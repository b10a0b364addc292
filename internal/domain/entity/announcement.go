package entity

import "time"

// Announcement aviso publicado por un admin en el portal.
type Announcement struct {
	ID          int64
	Title       string
	Description string
	Duration    string
	ImageURL    string // URL pública en el bucket de anuncios; vacío = sin imagen
	CreatedBy   string // ID del admin que lo creó
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
