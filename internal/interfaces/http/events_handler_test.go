package http_test

import (
	"bufio"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apphttp "github.com/tu-usuario/agroportal-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests ServerConfig — los streams SSE deben sobrevivir a los timeouts
// ──────────────────────────────────────────────────────────────────────────────

func TestServerConfig_SinDeadlineDeEscritura(t *testing.T) {
	cfg := apphttp.ServerConfig("test")

	assert.Zero(t, cfg.WriteTimeout,
		"fasthttp fija el deadline de escritura una sola vez por respuesta: cualquier valor cortaría los streams SSE al vencer")
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
}

// Un stream que emite durante más de un segundo debe llegar completo al
// cliente; si el servidor recupera un WriteTimeout corto, la conexión se corta
// a mitad de emisión y faltan eventos.
func TestServerConfig_StreamProlongadoLlegaCompleto(t *testing.T) {
	const eventos = 6

	app := fiber.New(apphttp.ServerConfig("test"))
	app.Get("/stream", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			for i := 0; i < eventos; i++ {
				fmt.Fprintf(w, "event: sync\ndata: {\"n\":%d}\n\n", i)
				if err := w.Flush(); err != nil {
					return
				}
				time.Sleep(200 * time.Millisecond)
			}
		}))
		return nil
	})

	inicio := time.Now()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/stream", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(inicio), time.Second,
		"la conexión debe seguir viva durante toda la emisión")
	assert.Equal(t, eventos, strings.Count(string(body), "event: sync"),
		"todos los eventos emitidos deben llegar al cliente")
}
