package usecase

import (
	"github.com/tu-usuario/agroportal-api/internal/application/listing"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// ListUseCase caso de uso genérico de listados CRUD sobre un almacén por
// entidad. Cada petición HTTP (o stream SSE) obtiene su propio Manager con el
// alcance del llamante; el estado no se comparte entre peticiones.
type ListUseCase[E any] struct {
	store    repository.ListStore[E]
	uploader listing.Uploader
	log      *logger.Logger
}

// NewListUseCase construye el caso de uso. uploader puede ser nil para
// entidades sin imágenes.
func NewListUseCase[E any](store repository.ListStore[E], uploader listing.Uploader, log *logger.Logger) *ListUseCase[E] {
	return &ListUseCase[E]{store: store, uploader: uploader, log: log}
}

// Manager crea un manager de listado. ownerID vacío = sin restricción (admin).
func (uc *ListUseCase[E]) Manager(ownerID string) *listing.Manager[E] {
	opts := []listing.Option[E]{listing.WithOwner[E](ownerID)}
	if uc.uploader != nil {
		opts = append(opts, listing.WithUploader[E](uc.uploader))
	}
	return listing.NewManager(uc.store, uc.log, opts...)
}

// Store acceso directo al almacén para operaciones puntuales (GetByID).
func (uc *ListUseCase[E]) Store() repository.ListStore[E] {
	return uc.store
}

// Table nombre de la tabla subyacente; lo usa el binding realtime.
func (uc *ListUseCase[E]) Table() string {
	return uc.store.Table()
}
