package entity

import "time"

// CarouselSlide lámina del carrusel del dashboard (solo admin la gestiona).
type CarouselSlide struct {
	ID         int64
	Title      string
	Subtitle   string
	ImageURL   string
	OrderIndex int
	IsActive   bool
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
