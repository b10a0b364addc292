package listing

import (
	"context"
	"io"
	"sync"

	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/internal/infrastructure/realtime"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// Uploader puerto de subida de imágenes que necesita el manager para las
// mutaciones con archivos. Lo implementa el almacén S3.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
	// Remove limpieza best-effort de objetos huérfanos; no devuelve error.
	Remove(ctx context.Context, urls []string)
}

// File archivo recibido en una mutación (imagen de producto, actividad, etc.).
type File struct {
	Name   string
	Reader io.Reader
}

// Result resultado de una mutación: Success con Data, o Error con el mensaje
// estable que el cliente muestra tal cual.
type Result[E any] struct {
	Success bool
	Data    *E
	Error   string
}

// Snapshot estado visible del listado en un instante dado.
type Snapshot[E any] struct {
	Items      []E
	Total      int
	Page       int
	PerPage    int
	TotalPages int
	Search     string
}

// Manager gestiona el ciclo de vida de un listado paginado con búsqueda:
// ventanas por offset, total exacto, búsqueda que reinicia a la página 1,
// carga incremental y mutaciones que refrescan la ventana desde el
// almacén (nunca se parchea el estado en memoria con el resultado de una
// mutación: la fila que devuelve la base es la verdad).
//
// Los accesos están serializados con un mutex y cada lectura lleva un número
// de secuencia: si mientras una consulta estaba en vuelo se disparó otra más
// reciente, el resultado viejo se descarta en lugar de pisar al nuevo.
type Manager[E any] struct {
	store    repository.ListStore[E]
	uploader Uploader
	log      *logger.Logger

	// OwnerID restringe el listado al usuario dado; vacío = sin restricción (admin).
	ownerID string

	mu         sync.Mutex
	seq        uint64 // número de secuencia de la última lectura disparada
	page       int
	perPage    int
	search     string
	items      []E
	total      int
	totalPages int
}

// Option configura el manager al construirlo.
type Option[E any] func(*Manager[E])

// WithOwner restringe el listado a las filas del usuario dado.
func WithOwner[E any](ownerID string) Option[E] {
	return func(m *Manager[E]) { m.ownerID = ownerID }
}

// WithUploader habilita mutaciones con archivos.
func WithUploader[E any](u Uploader) Option[E] {
	return func(m *Manager[E]) { m.uploader = u }
}

// WithPerPage fija el tamaño de página inicial.
func WithPerPage[E any](n int) Option[E] {
	return func(m *Manager[E]) {
		if n > 0 {
			m.perPage = n
		}
	}
}

// NewManager construye un manager sobre el almacén dado. Página inicial 1,
// 10 elementos por página.
func NewManager[E any](store repository.ListStore[E], log *logger.Logger, opts ...Option[E]) *Manager[E] {
	m := &Manager[E]{store: store, log: log, page: 1, perPage: 10}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot devuelve una copia del estado actual del listado.
func (m *Manager[E]) Snapshot() Snapshot[E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]E, len(m.items))
	copy(items, m.items)
	return Snapshot[E]{
		Items:      items,
		Total:      m.total,
		Page:       m.page,
		PerPage:    m.perPage,
		TotalPages: m.totalPages,
		Search:     m.search,
	}
}

// Open coloca el estado inicial del listado (página, tamaño y búsqueda) y
// carga la ventana. Si la página pedida queda más allá de la última, se ajusta
// a la última y se recarga.
func (m *Manager[E]) Open(ctx context.Context, page, perPage int, search string) error {
	m.mu.Lock()
	if perPage > 0 {
		m.perPage = perPage
	}
	if page < 1 {
		page = 1
	}
	m.page = page
	m.search = search
	seq, q := m.beginFetch(page)
	m.mu.Unlock()

	if err := m.runFetch(ctx, seq, q, false); err != nil {
		return err
	}

	m.mu.Lock()
	// Ajuste a rango: más allá de la última página se recarga en la última;
	// con el listado vacío la página válida es la 1.
	destino := m.page
	switch {
	case m.totalPages == 0:
		destino = 1
	case m.page > m.totalPages:
		destino = m.totalPages
	}
	ajustar := destino != m.page
	if ajustar {
		m.page = destino
	}
	var seq2 uint64
	var q2 repository.ListQuery
	if ajustar {
		seq2, q2 = m.beginFetch(m.page)
	}
	m.mu.Unlock()

	if !ajustar {
		return nil
	}
	return m.runFetch(ctx, seq2, q2, false)
}

// Fetch carga la ventana de la página actual reemplazando los elementos.
func (m *Manager[E]) Fetch(ctx context.Context) error {
	m.mu.Lock()
	seq, q := m.beginFetch(m.page)
	m.mu.Unlock()

	return m.runFetch(ctx, seq, q, false)
}

// SetPerPage cambia el tamaño de página, vuelve a la primera y recarga.
func (m *Manager[E]) SetPerPage(ctx context.Context, n int) error {
	m.mu.Lock()
	if n > 0 {
		m.perPage = n
	}
	m.page = 1
	seq, q := m.beginFetch(1)
	m.mu.Unlock()

	return m.runFetch(ctx, seq, q, false)
}

// Search fija el término de búsqueda, reinicia a la página 1 y recarga.
// Término vacío limpia la búsqueda.
func (m *Manager[E]) Search(ctx context.Context, term string) error {
	m.mu.Lock()
	m.search = term
	m.page = 1
	seq, q := m.beginFetch(1)
	m.mu.Unlock()

	return m.runFetch(ctx, seq, q, false)
}

// ClearSearch limpia la búsqueda y recarga desde la página 1.
func (m *Manager[E]) ClearSearch(ctx context.Context) error {
	return m.Search(ctx, "")
}

// LoadMore carga la página siguiente añadiendo al final. En la última página
// no hace nada.
func (m *Manager[E]) LoadMore(ctx context.Context) error {
	m.mu.Lock()
	if m.page >= m.totalPages {
		m.mu.Unlock()
		return nil
	}
	m.page++
	seq, q := m.beginFetch(m.page)
	m.mu.Unlock()

	return m.runFetch(ctx, seq, q, true)
}

// GoToPage salta a la página dada y recarga. Fuera de rango no hace nada.
func (m *Manager[E]) GoToPage(ctx context.Context, page int) error {
	m.mu.Lock()
	if page < 1 || (m.totalPages > 0 && page > m.totalPages) {
		m.mu.Unlock()
		return nil
	}
	m.page = page
	seq, q := m.beginFetch(page)
	m.mu.Unlock()

	return m.runFetch(ctx, seq, q, false)
}

// Create sube los archivos, persiste el registro y recarga la ventana.
// applyURLs recibe las URLs públicas de los archivos subidos para colocarlas en
// el registro antes de insertarlo. Si alguna subida falla, las ya subidas se
// eliminan y la mutación se aborta sin tocar la base.
func (m *Manager[E]) Create(ctx context.Context, rec *E, files []File, applyURLs func(*E, []string)) Result[E] {
	urls, ok := m.uploadAll(ctx, files)
	if !ok {
		return Result[E]{Error: domain.ErrUploadFailed.Error()}
	}
	if applyURLs != nil {
		applyURLs(rec, urls)
	}

	if err := m.store.Insert(ctx, rec); err != nil {
		m.removeAll(ctx, urls)
		m.log.Error().Err(err).Str("table", m.store.Table()).Msg("Error al crear registro")
		return Result[E]{Error: err.Error()}
	}

	if err := m.Fetch(ctx); err != nil {
		m.log.Warn().Err(err).Str("table", m.store.Table()).Msg("Error al refrescar tras crear")
	}
	return Result[E]{Success: true, Data: rec}
}

// Update sube los archivos nuevos, actualiza el registro y recarga la ventana.
// replacedURLs son las imágenes que la edición sustituye; se eliminan del
// bucket solo después de que la actualización haya sido persistida.
func (m *Manager[E]) Update(ctx context.Context, id int64, rec *E, files []File, applyURLs func(*E, []string), replacedURLs []string) Result[E] {
	urls, ok := m.uploadAll(ctx, files)
	if !ok {
		return Result[E]{Error: domain.ErrUploadFailed.Error()}
	}
	if applyURLs != nil {
		applyURLs(rec, urls)
	}

	if err := m.store.Update(ctx, id, rec); err != nil {
		m.removeAll(ctx, urls)
		m.log.Error().Err(err).Str("table", m.store.Table()).Int64("id", id).Msg("Error al actualizar registro")
		return Result[E]{Error: err.Error()}
	}

	m.removeAll(ctx, replacedURLs)
	if err := m.Fetch(ctx); err != nil {
		m.log.Warn().Err(err).Str("table", m.store.Table()).Msg("Error al refrescar tras actualizar")
	}
	return Result[E]{Success: true, Data: rec}
}

// Delete elimina el registro, limpia sus imágenes y recarga. Si la página
// actual quedó vacía y no es la primera, retrocede una página.
func (m *Manager[E]) Delete(ctx context.Context, id int64, imageURLs []string) Result[E] {
	if err := m.store.Delete(ctx, id); err != nil {
		m.log.Error().Err(err).Str("table", m.store.Table()).Int64("id", id).Msg("Error al eliminar registro")
		return Result[E]{Error: err.Error()}
	}
	m.removeAll(ctx, imageURLs)

	if err := m.Fetch(ctx); err != nil {
		m.log.Warn().Err(err).Str("table", m.store.Table()).Msg("Error al refrescar tras eliminar")
		return Result[E]{Success: true}
	}

	m.mu.Lock()
	quedoVacia := len(m.items) == 0 && m.page > 1
	if quedoVacia {
		m.page--
	}
	m.mu.Unlock()
	if quedoVacia {
		if err := m.Fetch(ctx); err != nil {
			m.log.Warn().Err(err).Str("table", m.store.Table()).Msg("Error al refrescar tras retroceder página")
		}
	}
	return Result[E]{Success: true}
}

// Bind consume la suscripción realtime refrescando la ventana actual ante cada
// cambio de la tabla. Bloquea hasta que ctx se cancele o la suscripción cierre;
// pensado para correr en la goroutine del stream SSE.
func (m *Manager[E]) Bind(ctx context.Context, sub *realtime.Subscription, onRefresh func(Snapshot[E])) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := m.Fetch(ctx); err != nil {
				m.log.Warn().Err(err).Str("table", m.store.Table()).Msg("Error al refrescar por evento realtime")
				continue
			}
			if onRefresh != nil {
				onRefresh(m.Snapshot())
			}
		}
	}
}

// beginFetch prepara una lectura bajo el lock: incrementa la secuencia y arma
// la consulta de la página dada.
func (m *Manager[E]) beginFetch(page int) (uint64, repository.ListQuery) {
	m.seq++
	return m.seq, repository.ListQuery{
		Limit:   m.perPage,
		Offset:  (page - 1) * m.perPage,
		Search:  m.search,
		OwnerID: m.ownerID,
	}
}

// runFetch ejecuta la consulta fuera del lock y aplica el resultado solo si
// sigue siendo la lectura más reciente.
func (m *Manager[E]) runFetch(ctx context.Context, seq uint64, q repository.ListQuery, appendItems bool) error {
	items, total, err := m.store.FetchWindow(ctx, q)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		// Hubo una lectura más reciente en vuelo: este resultado ya caducó.
		return nil
	}
	if appendItems {
		m.items = append(m.items, items...)
	} else {
		m.items = items
	}
	m.total = total
	m.totalPages = totalPages(total, m.perPage)
	return nil
}

// uploadAll sube todos los archivos; si alguno falla elimina los ya subidos.
func (m *Manager[E]) uploadAll(ctx context.Context, files []File) ([]string, bool) {
	if len(files) == 0 {
		return nil, true
	}
	if m.uploader == nil {
		m.log.Error().Str("table", m.store.Table()).Msg("Mutación con archivos sin almacén configurado")
		return nil, false
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := m.uploader.Upload(ctx, f.Name, f.Reader)
		if err != nil {
			m.log.Error().Err(err).Str("file", f.Name).Msg("Error al subir imagen")
			m.removeAll(ctx, urls)
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

func (m *Manager[E]) removeAll(ctx context.Context, urls []string) {
	if len(urls) == 0 || m.uploader == nil {
		return
	}
	m.uploader.Remove(ctx, urls)
}

func totalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
