package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// listWhere: composición del WHERE de listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListWhere_SinFiltros(t *testing.T) {
	where, args := listWhere("", []string{"name"}, "user_id = $%d", "")
	assert.Empty(t, where, "sin búsqueda ni dueño no debe generarse WHERE")
	assert.Nil(t, args)
}

func TestListWhere_SoloBusqueda(t *testing.T) {
	where, args := listWhere("maíz", []string{"name", "description"}, "", "")
	assert.Equal(t, " WHERE (name ILIKE $1 OR description ILIKE $1)", where,
		"todas las columnas comparten el mismo argumento de búsqueda")
	require.Len(t, args, 1)
	assert.Equal(t, "%maíz%", args[0], "la búsqueda es por subcadena")
}

func TestListWhere_SoloDueno(t *testing.T) {
	where, args := listWhere("", []string{"name"}, "user_id = $%d", "u-1")
	assert.Equal(t, " WHERE user_id = $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, "u-1", args[0])
}

func TestListWhere_BusquedaYDueno(t *testing.T) {
	where, args := listWhere("abono", []string{"name", "category"}, "user_id = $%d", "u-7")
	assert.Equal(t, " WHERE (name ILIKE $1 OR category ILIKE $1) AND user_id = $2", where,
		"el filtro de dueño se numera a continuación del de búsqueda")
	require.Len(t, args, 2)
	assert.Equal(t, "%abono%", args[0])
	assert.Equal(t, "u-7", args[1])
}

func TestListWhere_ExpresionDuenoCompuesta(t *testing.T) {
	// Los feedbacks no filtran propiedad estricta: público O propio.
	where, args := listWhere("", nil, "(is_public = TRUE OR user_id = $%d)", "u-3")
	assert.Equal(t, " WHERE (is_public = TRUE OR user_id = $1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, "u-3", args[0])
}

func TestListWhere_DuenoVacioIgnoraExpresion(t *testing.T) {
	where, args := listWhere("", nil, "user_id = $%d", "")
	assert.Empty(t, where, "OwnerID vacío significa llamante admin: sin filtro")
	assert.Nil(t, args)
}

// ──────────────────────────────────────────────────────────────────────────────
// windowSuffix: ORDER BY + LIMIT/OFFSET
// ──────────────────────────────────────────────────────────────────────────────

func TestWindowSuffix_NumeraTrasLosArgsExistentes(t *testing.T) {
	assert.Equal(t, " ORDER BY created_at DESC LIMIT $1 OFFSET $2", windowSuffix("created_at DESC", 0))
	assert.Equal(t, " ORDER BY created_at DESC LIMIT $3 OFFSET $4", windowSuffix("created_at DESC", 2))
	assert.Equal(t, " ORDER BY order_index ASC LIMIT $2 OFFSET $3", windowSuffix("order_index ASC", 1))
}
