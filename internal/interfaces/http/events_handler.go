package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/listing"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/infrastructure/realtime"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// streamFn transmite por SSE el listado de una tabla hasta que el cliente se
// desconecta o ctx se cancela. ownerID acota el listado (vacío = admin);
// userID identifica siempre al llamante.
type streamFn func(ctx context.Context, ownerID, userID string, page dto.PageRequest, w *bufio.Writer)

// EventsHandler expone listados en vivo por Server-Sent Events. Cada conexión
// abre un listado de la tabla pedida, envía el estado inicial como evento
// `sync` y vuelve a enviarlo tras cada cambio notificado por la base de datos.
type EventsHandler struct {
	hub     *realtime.Hub
	streams map[string]streamFn
	log     *logger.Logger
}

// NewEventsHandler construye el handler sin tablas registradas.
func NewEventsHandler(hub *realtime.Hub, log *logger.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, streams: make(map[string]streamFn), log: log}
}

// RegisterStream habilita el stream SSE de la tabla del caso de uso dado.
func RegisterStream[E any, R any](h *EventsHandler, uc *usecase.ListUseCase[E], toResp func(E) R) {
	table := uc.Table()
	h.streams[table] = func(ctx context.Context, ownerID, _ string, page dto.PageRequest, w *bufio.Writer) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		m := uc.Manager(ownerID)
		if err := m.Open(ctx, page.Page, page.PerPage, page.Search); err != nil {
			_ = writeSSE(w, "error", dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			return
		}
		if err := writeSSE(w, "sync", toListResponse(m.Snapshot(), toResp)); err != nil {
			return
		}

		sub := h.hub.Subscribe(table)
		defer sub.Close()

		m.Bind(ctx, sub, func(snap listing.Snapshot[E]) {
			if err := writeSSE(w, "sync", toListResponse(snap, toResp)); err != nil {
				cancel()
			}
		})
	}
}

// RegisterNotificationsStream habilita el stream del feed de notificaciones.
// A diferencia de los listados, los eventos se filtran por el user_id de la fila:
// cada usuario solo recibe re-sincronizaciones de su propio feed.
func (h *EventsHandler) RegisterNotificationsStream(uc *usecase.NotificationUseCase) {
	h.streams["notifications"] = func(ctx context.Context, _, userID string, _ dto.PageRequest, w *bufio.Writer) {
		sync := func() error {
			feed, err := uc.Feed(ctx, userID)
			if err != nil {
				return writeSSE(w, "error", dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			}
			return writeSSE(w, "sync", feed)
		}
		if err := sync(); err != nil {
			return
		}

		sub := h.hub.Subscribe("notifications")
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				if rowUserID(ev) != userID {
					continue
				}
				if err := sync(); err != nil {
					return
				}
			}
		}
	}
}

// rowUserID extrae el user_id de la fila del evento (NEW, o OLD en DELETE).
func rowUserID(ev realtime.Event) string {
	var row struct {
		UserID string `json:"user_id"`
	}
	raw := ev.New
	if len(raw) == 0 {
		raw = ev.Old
	}
	if len(raw) == 0 {
		return ""
	}
	_ = json.Unmarshal(raw, &row)
	return row.UserID
}

// Stream godoc
// @Summary      Listado en vivo de una tabla por Server-Sent Events
// @Description  Emite un evento `sync` con la página pedida y lo reemite ante cada cambio.
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Param        table     path   string  true   "Tabla a observar"
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{table} [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	fn, ok := h.streams[c.Params("table")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tabla no disponible para eventos"})
	}

	// Los Locals no sobreviven al handler: capturar antes de entrar al stream.
	ownerID := ownerScope(c)
	userID := GetUserID(c)
	page := parsePage(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		fn(context.Background(), ownerID, userID, page, w)
	}))
	return nil
}

// writeSSE escribe un evento SSE y lo envía al cliente. El error de Flush es la
// señal de que el cliente se desconectó.
func writeSSE(w *bufio.Writer, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}
