package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/agroportal-api/internal/interfaces/http"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble de test: almacén de productos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductStore struct {
	rows    map[int64]entity.Product
	updated bool
}

func newFakeProductStore(rows ...entity.Product) *fakeProductStore {
	s := &fakeProductStore{rows: make(map[int64]entity.Product)}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *fakeProductStore) FetchWindow(_ context.Context, _ repository.ListQuery) ([]entity.Product, int, error) {
	out := make([]entity.Product, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeProductStore) Insert(_ context.Context, rec *entity.Product) error {
	s.rows[rec.ID] = *rec
	return nil
}

func (s *fakeProductStore) Update(_ context.Context, id int64, rec *entity.Product) error {
	rec.ID = id
	s.rows[id] = *rec
	s.updated = true
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id int64) error {
	delete(s.rows, id)
	return nil
}

func (s *fakeProductStore) Table() string { return "products" }

func buildProductApp(store *fakeProductStore) *fiber.App {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	handler := apphttp.NewProductHandler(usecase.NewListUseCase[entity.Product](store, nil, log))

	app := fiber.New()
	app.Put("/products/:id", handler.Update)
	return app
}

func putProduct(t *testing.T, app *fiber.App, id string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/products/"+id, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update — misma validación que Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_SinNombreRetorna400(t *testing.T) {
	store := newFakeProductStore(entity.Product{ID: 1, Name: "Miel", Category: "despensa", Price: decimal.NewFromInt(10)})
	app := buildProductApp(store)

	resp := putProduct(t, app, "1", map[string]any{"category": "despensa", "price": "10"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"una edición sin name no debe aceptarse")
	assert.False(t, store.updated, "el producto no debe modificarse")
	assert.Equal(t, "Miel", store.rows[1].Name)
}

func TestProductUpdate_PrecioNegativoRetorna400(t *testing.T) {
	store := newFakeProductStore(entity.Product{ID: 1, Name: "Miel", Category: "despensa", Price: decimal.NewFromInt(10)})
	app := buildProductApp(store)

	resp := putProduct(t, app, "1", map[string]any{"name": "Miel", "category": "despensa", "price": "-1"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, store.updated)
}

func TestProductUpdate_CuerpoValidoActualiza(t *testing.T) {
	store := newFakeProductStore(entity.Product{ID: 1, Name: "Miel", Category: "despensa", Price: decimal.NewFromInt(10)})
	app := buildProductApp(store)

	resp := putProduct(t, app, "1", map[string]any{"name": "Miel de abeja", "category": "despensa", "price": "12.50"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, store.updated)
	assert.Equal(t, "Miel de abeja", store.rows[1].Name)
	assert.True(t, store.rows[1].Price.Equal(decimal.RequireFromString("12.50")))
}
