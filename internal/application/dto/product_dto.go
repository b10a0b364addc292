package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// ProductRequest entrada para crear o actualizar un producto. Las imágenes
// llegan como archivos multipart; KeptImages enumera las URLs existentes que la
// edición conserva (las demás se eliminan del bucket).
type ProductRequest struct {
	Name        string          `json:"name" form:"name" validate:"required,min=1,max=200"`
	Category    string          `json:"category" form:"category" validate:"required"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Stock       int             `json:"stock" form:"stock" validate:"min=0"`
	KeptImages  []string        `json:"kept_images" form:"kept_images"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p entity.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      images,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
