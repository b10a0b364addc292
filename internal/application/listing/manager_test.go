package listing

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: almacén en memoria y uploader falso
// ──────────────────────────────────────────────────────────────────────────────

type item struct {
	ID     int64
	Name   string
	UserID string
	Images []string
}

// fakeStore implementa repository.ListStore[item] en memoria, respetando
// búsqueda por subcadena, filtro de dueño y ventanas por offset.
type fakeStore struct {
	rows   []item
	nextID int64
}

func newFakeStore(names ...string) *fakeStore {
	s := &fakeStore{nextID: 1}
	for _, n := range names {
		s.rows = append(s.rows, item{ID: s.nextID, Name: n})
		s.nextID++
	}
	return s
}

func (s *fakeStore) filtered(q repository.ListQuery) []item {
	var out []item
	for _, r := range s.rows {
		if q.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Search)) {
			continue
		}
		if q.OwnerID != "" && r.UserID != q.OwnerID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *fakeStore) FetchWindow(_ context.Context, q repository.ListQuery) ([]item, int, error) {
	all := s.filtered(q)
	total := len(all)
	if q.Offset >= total {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	window := make([]item, end-q.Offset)
	copy(window, all[q.Offset:end])
	return window, total, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*item, error) {
	for _, r := range s.rows {
		if r.ID == id {
			rr := r
			return &rr, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Insert(_ context.Context, rec *item) error {
	rec.ID = s.nextID
	s.nextID++
	s.rows = append([]item{*rec}, s.rows...) // más reciente primero
	return nil
}

func (s *fakeStore) Update(_ context.Context, id int64, rec *item) error {
	for i, r := range s.rows {
		if r.ID == id {
			rec.ID = id
			s.rows[i] = *rec
			return nil
		}
	}
	return errors.New("no existe")
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("no existe")
}

func (s *fakeStore) Table() string { return "items" }

// fakeUploader registra subidas y eliminaciones; failAt > 0 hace fallar esa subida.
type fakeUploader struct {
	uploaded []string
	removed  []string
	failAt   int
	calls    int
}

func (u *fakeUploader) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	u.calls++
	if u.failAt > 0 && u.calls == u.failAt {
		return "", errors.New("bucket caído")
	}
	url := "https://cdn.test/agroportal/" + filename
	u.uploaded = append(u.uploaded, url)
	return url, nil
}

func (u *fakeUploader) Remove(_ context.Context, urls []string) {
	u.removed = append(u.removed, urls...)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func nombres(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación y búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_FetchPaginaYTotales(t *testing.T) {
	store := newFakeStore("a", "b", "c", "d", "e", "f", "g")
	m := NewManager[item](store, testLogger(), WithPerPage[item](3))

	require.NoError(t, m.Fetch(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, nombres(snap.Items))
	assert.Equal(t, 7, snap.Total)
	assert.Equal(t, 3, snap.TotalPages, "7 elementos a 3 por página son 3 páginas")
	assert.Equal(t, 1, snap.Page)
}

func TestManager_SearchReiniciaAPagina1(t *testing.T) {
	store := newFakeStore("maíz dulce", "abono", "maíz forrajero", "semillas", "maíz blanco")
	m := NewManager[item](store, testLogger(), WithPerPage[item](2))
	ctx := context.Background()

	require.NoError(t, m.Fetch(ctx))
	require.NoError(t, m.GoToPage(ctx, 2))
	require.Equal(t, 2, m.Snapshot().Page)

	require.NoError(t, m.Search(ctx, "maíz"))
	snap := m.Snapshot()
	assert.Equal(t, 1, snap.Page, "buscar siempre vuelve a la primera página")
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, []string{"maíz dulce", "maíz forrajero"}, nombres(snap.Items))

	require.NoError(t, m.ClearSearch(ctx))
	snap = m.Snapshot()
	assert.Empty(t, snap.Search)
	assert.Equal(t, 5, snap.Total)
	assert.Equal(t, 1, snap.Page)
}

func TestManager_LoadMoreAcumulaYParaEnLaUltima(t *testing.T) {
	store := newFakeStore("a", "b", "c", "d", "e")
	m := NewManager[item](store, testLogger(), WithPerPage[item](2))
	ctx := context.Background()

	require.NoError(t, m.Fetch(ctx))
	require.NoError(t, m.LoadMore(ctx))
	require.NoError(t, m.LoadMore(ctx))

	snap := m.Snapshot()
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, nombres(snap.Items))
	assert.Equal(t, 3, snap.Page)

	// Ya en la última página: LoadMore no hace nada.
	require.NoError(t, m.LoadMore(ctx))
	snap = m.Snapshot()
	assert.Equal(t, 3, snap.Page)
	assert.Len(t, snap.Items, 5)
}

func TestManager_OpenAjustaPaginaFueraDeRango(t *testing.T) {
	store := newFakeStore("a", "b", "c", "d", "e")
	m := NewManager[item](store, testLogger())
	ctx := context.Background()

	require.NoError(t, m.Open(ctx, 9, 2, ""))
	snap := m.Snapshot()
	assert.Equal(t, 3, snap.Page, "una página más allá de la última se ajusta a la última")
	assert.Equal(t, []string{"e"}, nombres(snap.Items))

	require.NoError(t, m.Open(ctx, 0, 2, "a"))
	snap = m.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, "a", snap.Search)
	assert.Equal(t, []string{"a"}, nombres(snap.Items))

	// Listado vacío: la única página válida es la 1, nunca "página 9 de 0".
	vacio := NewManager[item](newFakeStore(), testLogger())
	require.NoError(t, vacio.Open(ctx, 9, 2, ""))
	snap = vacio.Snapshot()
	assert.Equal(t, 1, snap.Page, "con total 0 la página se ajusta a 1")
	assert.Equal(t, 0, snap.Total)
	assert.Empty(t, snap.Items)
}

func TestManager_GoToPageFueraDeRangoNoHaceNada(t *testing.T) {
	store := newFakeStore("a", "b", "c")
	m := NewManager[item](store, testLogger(), WithPerPage[item](2))
	ctx := context.Background()

	require.NoError(t, m.Fetch(ctx))
	antes := m.Snapshot()

	require.NoError(t, m.GoToPage(ctx, 0))
	require.NoError(t, m.GoToPage(ctx, 99))

	despues := m.Snapshot()
	assert.Equal(t, antes.Page, despues.Page)
	assert.Equal(t, nombres(antes.Items), nombres(despues.Items))

	require.NoError(t, m.GoToPage(ctx, 2))
	assert.Equal(t, []string{"c"}, nombres(m.Snapshot().Items))
}

func TestManager_FiltroDeDueno(t *testing.T) {
	store := newFakeStore()
	store.rows = []item{
		{ID: 1, Name: "propio 1", UserID: "u-1"},
		{ID: 2, Name: "ajeno", UserID: "u-2"},
		{ID: 3, Name: "propio 2", UserID: "u-1"},
	}
	m := NewManager[item](store, testLogger(), WithOwner[item]("u-1"))

	require.NoError(t, m.Fetch(context.Background()))
	snap := m.Snapshot()
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, []string{"propio 1", "propio 2"}, nombres(snap.Items))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_CreateRefrescaSinDuplicar(t *testing.T) {
	store := newFakeStore("a", "b")
	m := NewManager[item](store, testLogger(), WithPerPage[item](5))
	ctx := context.Background()
	require.NoError(t, m.Fetch(ctx))

	res := m.Create(ctx, &item{Name: "nuevo"}, nil, nil)
	require.True(t, res.Success)
	require.NotNil(t, res.Data)
	assert.NotZero(t, res.Data.ID, "el ID asignado por el almacén vuelve en Data")

	snap := m.Snapshot()
	assert.Equal(t, []string{"nuevo", "a", "b"}, nombres(snap.Items),
		"la ventana se recarga desde el almacén, sin parchear en memoria")
	assert.Equal(t, 3, snap.Total)
}

func TestManager_CreateConImagenes(t *testing.T) {
	store := newFakeStore()
	up := &fakeUploader{}
	m := NewManager[item](store, testLogger(), WithUploader[item](up))
	ctx := context.Background()

	rec := &item{Name: "con fotos"}
	res := m.Create(ctx, rec,
		[]File{{Name: "uno.png", Reader: strings.NewReader("x")}, {Name: "dos.png", Reader: strings.NewReader("y")}},
		func(r *item, urls []string) { r.Images = urls },
	)
	require.True(t, res.Success)
	assert.Len(t, rec.Images, 2)
	assert.Equal(t, up.uploaded, rec.Images)
	assert.Empty(t, up.removed)
}

func TestManager_CreateAbortaSiFallaLaSubida(t *testing.T) {
	store := newFakeStore()
	up := &fakeUploader{failAt: 2}
	m := NewManager[item](store, testLogger(), WithUploader[item](up))
	ctx := context.Background()

	res := m.Create(ctx, &item{Name: "no debe existir"},
		[]File{{Name: "ok.png", Reader: strings.NewReader("x")}, {Name: "falla.png", Reader: strings.NewReader("y")}},
		func(r *item, urls []string) { r.Images = urls },
	)

	assert.False(t, res.Success)
	assert.Equal(t, "Failed to upload image", res.Error, "el mensaje de error de subida es estable")
	assert.Empty(t, store.rows, "la base no se toca si la subida falla")
	assert.Equal(t, up.uploaded, up.removed, "las subidas parciales se limpian")
}

func TestManager_UpdateEliminaImagenesSustituidas(t *testing.T) {
	store := newFakeStore()
	vieja := "https://cdn.test/agroportal/vieja.png"
	store.rows = []item{{ID: 1, Name: "prod", Images: []string{vieja}}}
	store.nextID = 2
	up := &fakeUploader{}
	m := NewManager[item](store, testLogger(), WithUploader[item](up))
	ctx := context.Background()

	res := m.Update(ctx, 1, &item{Name: "prod v2"},
		[]File{{Name: "nueva.png", Reader: strings.NewReader("x")}},
		func(r *item, urls []string) { r.Images = urls },
		[]string{vieja},
	)
	require.True(t, res.Success)
	assert.Contains(t, up.removed, vieja, "la imagen sustituida se elimina tras persistir")
	assert.Equal(t, "prod v2", store.rows[0].Name)
}

func TestManager_DeleteUltimoDePaginaRetrocede(t *testing.T) {
	store := newFakeStore("a", "b", "c", "d", "e")
	m := NewManager[item](store, testLogger(), WithPerPage[item](2))
	ctx := context.Background()

	require.NoError(t, m.Fetch(ctx))
	require.NoError(t, m.GoToPage(ctx, 3)) // página 3: solo "e"
	require.Equal(t, []string{"e"}, nombres(m.Snapshot().Items))

	res := m.Delete(ctx, 5, nil)
	require.True(t, res.Success)

	snap := m.Snapshot()
	assert.Equal(t, 2, snap.Page, "al vaciarse la página se retrocede una")
	assert.Equal(t, []string{"c", "d"}, nombres(snap.Items))
	assert.Equal(t, 4, snap.Total)
}

func TestManager_DeleteEnPrimeraPaginaNoRetrocede(t *testing.T) {
	store := newFakeStore("a")
	m := NewManager[item](store, testLogger(), WithPerPage[item](2))
	ctx := context.Background()
	require.NoError(t, m.Fetch(ctx))

	res := m.Delete(ctx, 1, nil)
	require.True(t, res.Success)

	snap := m.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.Total)
}

func TestManager_DeleteLimpiaImagenes(t *testing.T) {
	store := newFakeStore()
	urls := []string{"https://cdn.test/agroportal/x.png", "https://cdn.test/agroportal/y.png"}
	store.rows = []item{{ID: 1, Name: "p", Images: urls}}
	store.nextID = 2
	up := &fakeUploader{}
	m := NewManager[item](store, testLogger(), WithUploader[item](up))

	res := m.Delete(context.Background(), 1, urls)
	require.True(t, res.Success)
	assert.Equal(t, urls, up.removed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas concurrentes: la más reciente gana
// ──────────────────────────────────────────────────────────────────────────────

// slowStore retiene la primera lectura hasta que se libere, para simular una
// respuesta vieja llegando después de una nueva.
type slowStore struct {
	*fakeStore
	hold  chan struct{}
	calls int
}

func (s *slowStore) FetchWindow(ctx context.Context, q repository.ListQuery) ([]item, int, error) {
	s.calls++
	if s.calls == 1 {
		<-s.hold
	}
	return s.fakeStore.FetchWindow(ctx, q)
}

func TestManager_LecturaViejaNoPisaALaNueva(t *testing.T) {
	store := &slowStore{fakeStore: newFakeStore("a", "b", "c", "d"), hold: make(chan struct{})}
	m := NewManager[item](store, testLogger(), WithPerPage[item](2))
	ctx := context.Background()

	primera := make(chan error, 1)
	go func() { primera <- m.Fetch(ctx) }() // quedará retenida

	// Esperar a que la primera lectura esté en vuelo antes de disparar la segunda.
	require.Eventually(t, func() bool { return store.calls == 1 }, time.Second, time.Millisecond)

	require.NoError(t, m.GoToPage(ctx, 2)) // lectura más reciente, completa ya
	assert.Equal(t, []string{"c", "d"}, nombres(m.Snapshot().Items))

	close(store.hold) // ahora termina la lectura vieja
	require.NoError(t, <-primera)

	snap := m.Snapshot()
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, []string{"c", "d"}, nombres(snap.Items),
		"el resultado de la lectura caducada se descarta")
}
