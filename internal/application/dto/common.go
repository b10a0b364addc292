package dto

// PageRequest paginación y búsqueda para listados.
type PageRequest struct {
	Page    int    `query:"page" validate:"min=1"`
	PerPage int    `query:"per_page" validate:"min=1,max=100"`
	Search  string `query:"search"`
}

// DefaultPage aplica valores por defecto si Page/PerPage son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 10
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// ListResponse lista paginada con metadatos de página.
type ListResponse[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
	Search     string `json:"search,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MutationResponse resultado de una mutación al estilo {success, error}.
type MutationResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
