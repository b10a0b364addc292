package entity

import "time"

// Activity actividad de la granja (talleres, visitas, faenas) reservable por usuarios.
type Activity struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
	Type        string
	Capacity    int
	Location    string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
