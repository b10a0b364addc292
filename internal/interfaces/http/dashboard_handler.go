package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// DashboardHandler maneja el dashboard y el carrusel de portada.
// La vista agregada es de lectura; la gestión del carrusel es solo admin.
type DashboardHandler struct {
	uc     *usecase.DashboardUseCase
	listUC *usecase.ListUseCase[entity.CarouselSlide]
	list   fiber.Handler
	del    fiber.Handler
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, listUC *usecase.ListUseCase[entity.CarouselSlide]) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		listUC: listUC,
		list:   listEndpoint(listUC, dto.ToCarouselSlideResponse),
		del: deleteEndpoint(listUC, dto.ToCarouselSlideResponse, func(s entity.CarouselSlide) []string {
			if s.ImageURL == "" {
				return nil
			}
			return []string{s.ImageURL}
		}),
	}
}

// Overview godoc
// @Summary      Vista del dashboard: carrusel activo y actividades recientes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de actividades recientes (por defecto 6)"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.uc.Overview(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSlides godoc
// @Summary      Listar láminas del carrusel (admin, incluye inactivas)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por título o subtítulo"
// @Success      200  {object}  dto.ListResponse[dto.CarouselSlideResponse]
// @Router       /api/carousel [get]
func (h *DashboardHandler) ListSlides(c *fiber.Ctx) error { return h.list(c) }

// CreateSlide godoc
// @Summary      Crear lámina del carrusel (admin)
// @Tags         dashboard
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.MutationResponse[dto.CarouselSlideResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/carousel [post]
func (h *DashboardHandler) CreateSlide(c *fiber.Ctx) error {
	var in dto.CarouselSlideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image es requerida"})
	}

	rec := &entity.CarouselSlide{
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		IsActive:  in.IsActive,
		CreatedBy: GetUserID(c),
	}
	res := h.listUC.Manager("").Create(c.Context(), rec, files, func(r *entity.CarouselSlide, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	})
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToCarouselSlideResponse))
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(res, dto.ToCarouselSlideResponse))
}

// UpdateSlide godoc
// @Summary      Actualizar lámina del carrusel (admin)
// @Tags         dashboard
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "ID de la lámina"
// @Success      200  {object}  dto.MutationResponse[dto.CarouselSlideResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carousel/{id} [put]
func (h *DashboardHandler) UpdateSlide(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	existing, err := h.listUC.Store().GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lámina no encontrada"})
	}

	var in dto.CarouselSlideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)

	rec := &entity.CarouselSlide{
		Title:      in.Title,
		Subtitle:   in.Subtitle,
		IsActive:   in.IsActive,
		ImageURL:   existing.ImageURL,
		OrderIndex: existing.OrderIndex,
	}
	// La imagen anterior solo se elimina si llega una nueva que la sustituye.
	var replaced []string
	if len(files) > 0 && existing.ImageURL != "" {
		replaced = []string{existing.ImageURL}
	}
	res := h.listUC.Manager("").Update(c.Context(), id, rec, files, func(r *entity.CarouselSlide, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	}, replaced)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToCarouselSlideResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToCarouselSlideResponse))
}

// DeleteSlide godoc
// @Summary      Eliminar lámina del carrusel (admin)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la lámina"
// @Success      200  {object}  dto.MutationResponse[dto.CarouselSlideResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carousel/{id} [delete]
func (h *DashboardHandler) DeleteSlide(c *fiber.Ctx) error { return h.del(c) }

// ReorderSlides godoc
// @Summary      Reordenar el carrusel (admin)
// @Description  Recibe los IDs de las láminas en el orden deseado.
// @Tags         dashboard
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CarouselOrderRequest  true  "IDs en orden"
// @Success      204  "Sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/carousel/order [put]
func (h *DashboardHandler) ReorderSlides(c *fiber.Ctx) error {
	var in dto.CarouselOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.SlideIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slide_ids es requerido"})
	}
	if err := h.uc.ReorderCarousel(c.Context(), in.SlideIDs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
