package entity

import "time"

// Tipos válidos de feedback.
const (
	FeedbackGeneral = "general"
	FeedbackProduct = "product"
)

// Feedback opinión de un usuario sobre el servicio o un producto.
// Los no-admin solo ven feedbacks públicos o propios.
type Feedback struct {
	ID           int64
	UserID       string
	UserName     string
	UserEmail    string
	Profession   string
	FeedbackType string // general, product
	Product      string // nombre del producto si FeedbackType == product
	Message      string
	Rating       int // 1..5; >= 4 cuenta como positivo en el resumen
	IsPublic     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
