package repository

import "context"

// ListQuery ventana de listado: paginación por offset, búsqueda por subcadena
// (case-insensitive, OR sobre las columnas configuradas de cada tabla) y filtro
// de propiedad para llamantes no privilegiados.
type ListQuery struct {
	Limit  int
	Offset int
	Search string
	// OwnerID vacío = sin filtro (llamante admin). Cada repositorio interpreta el
	// alcance: la mayoría filtra user_id = OwnerID; feedbacks usa "público o propio".
	OwnerID string
}

// ListStore puerto genérico de persistencia para entidades listables.
// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro
// (independiente del tamaño de la ventana). El orden es el del servidor,
// normalmente created_at descendente.
type ListStore[E any] interface {
	FetchWindow(ctx context.Context, q ListQuery) ([]E, int, error)
	GetByID(ctx context.Context, id int64) (*E, error)
	Insert(ctx context.Context, rec *E) error
	Update(ctx context.Context, id int64, rec *E) error
	Delete(ctx context.Context, id int64) error
	// Table nombre de la tabla subyacente; lo usa el binding realtime.
	Table() string
}
