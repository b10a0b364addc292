package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/listing"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
)

// parseID lee el parámetro :id de la ruta como entero.
func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// parsePage lee page/per_page/search de la query con sus valores por defecto.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	return page
}

// collectFiles extrae los archivos multipart del campo dado. Sin formulario
// multipart o sin archivos devuelve nil, que las mutaciones interpretan como
// "sin imágenes nuevas".
func collectFiles(c *fiber.Ctx, field string) ([]listing.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	headers := form.File[field]
	files := make([]listing.File, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, err
		}
		files = append(files, listing.File{Name: h.Filename, Reader: f})
	}
	return files, nil
}

// closeFiles cierra los readers abiertos por collectFiles.
func closeFiles(files []listing.File) {
	for _, f := range files {
		if closer, ok := f.Reader.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
}

// toListResponse arma la respuesta paginada desde el snapshot del manager.
func toListResponse[E any, R any](snap listing.Snapshot[E], toResp func(E) R) dto.ListResponse[R] {
	items := make([]R, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, toResp(it))
	}
	return dto.ListResponse[R]{
		Items:      items,
		Total:      snap.Total,
		Page:       snap.Page,
		PerPage:    snap.PerPage,
		TotalPages: snap.TotalPages,
		Search:     snap.Search,
	}
}

// toMutationResponse mapea el resultado de una mutación al DTO {success, error}.
func toMutationResponse[E any, R any](res listing.Result[E], toResp func(E) R) dto.MutationResponse[R] {
	out := dto.MutationResponse[R]{Success: res.Success, Error: res.Error}
	if res.Data != nil {
		r := toResp(*res.Data)
		out.Data = &r
	}
	return out
}

// listEndpoint handler genérico de listado paginado con búsqueda sobre un
// caso de uso de listados.
func listEndpoint[E any, R any](uc *usecase.ListUseCase[E], toResp func(E) R) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := parsePage(c)
		m := uc.Manager(ownerScope(c))
		if err := m.Open(c.Context(), page.Page, page.PerPage, page.Search); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(toListResponse(m.Snapshot(), toResp))
	}
}

// getEndpoint handler genérico de detalle por ID.
func getEndpoint[E any, R any](uc *usecase.ListUseCase[E], toResp func(E) R) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
		}
		rec, err := uc.Store().GetByID(c.Context(), id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if rec == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
		}
		return c.JSON(toResp(*rec))
	}
}

// deleteEndpoint handler genérico de borrado; images extrae las URLs a limpiar
// del registro (nil si la entidad no tiene imágenes).
func deleteEndpoint[E any, R any](uc *usecase.ListUseCase[E], toResp func(E) R, images func(E) []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
		}
		rec, err := uc.Store().GetByID(c.Context(), id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if rec == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
		}
		var urls []string
		if images != nil {
			urls = images(*rec)
		}
		res := uc.Manager(ownerScope(c)).Delete(c.Context(), id, urls)
		if !res.Success {
			return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, toResp))
		}
		return c.JSON(toMutationResponse(res, toResp))
	}
}
