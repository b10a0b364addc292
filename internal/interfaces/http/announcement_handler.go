package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// AnnouncementHandler maneja las peticiones HTTP para avisos.
// Lectura para cualquier usuario autenticado; mutaciones solo admin (router).
type AnnouncementHandler struct {
	uc   *usecase.ListUseCase[entity.Announcement]
	list fiber.Handler
	get  fiber.Handler
	del  fiber.Handler
}

// NewAnnouncementHandler construye el handler.
func NewAnnouncementHandler(uc *usecase.ListUseCase[entity.Announcement]) *AnnouncementHandler {
	return &AnnouncementHandler{
		uc:   uc,
		list: listEndpoint(uc, dto.ToAnnouncementResponse),
		get:  getEndpoint(uc, dto.ToAnnouncementResponse),
		del: deleteEndpoint(uc, dto.ToAnnouncementResponse, func(a entity.Announcement) []string {
			if a.ImageURL == "" {
				return nil
			}
			return []string{a.ImageURL}
		}),
	}
}

// List godoc
// @Summary      Listar avisos
// @Tags         announcements
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por título o descripción"
// @Success      200  {object}  dto.ListResponse[dto.AnnouncementResponse]
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c *fiber.Ctx) error { return h.list(c) }

// GetByID godoc
// @Summary      Obtener aviso por ID
// @Tags         announcements
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del aviso"
// @Success      200  {object}  dto.AnnouncementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/announcements/{id} [get]
func (h *AnnouncementHandler) GetByID(c *fiber.Ctx) error { return h.get(c) }

// Create godoc
// @Summary      Crear aviso (admin)
// @Tags         announcements
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.MutationResponse[dto.AnnouncementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var in dto.AnnouncementRequest
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

	rec := &entity.Announcement{
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		CreatedBy:   GetUserID(c),
	}
	res := h.uc.Manager("").Create(c.Context(), rec, files, func(r *entity.Announcement, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	})
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToAnnouncementResponse))
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(res, dto.ToAnnouncementResponse))
}

// Update godoc
// @Summary      Actualizar aviso (admin)
// @Tags         announcements
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "ID del aviso"
// @Success      200  {object}  dto.MutationResponse[dto.AnnouncementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	existing, err := h.uc.Store().GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aviso no encontrado"})
	}

	var in dto.AnnouncementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)

	rec := &entity.Announcement{
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		ImageURL:    existing.ImageURL,
	}
	// La imagen anterior solo se elimina si llega una nueva que la sustituye.
	var replaced []string
	if len(files) > 0 && existing.ImageURL != "" {
		replaced = []string{existing.ImageURL}
	}
	res := h.uc.Manager("").Update(c.Context(), id, rec, files, func(r *entity.Announcement, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	}, replaced)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToAnnouncementResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToAnnouncementResponse))
}

// Delete godoc
// @Summary      Eliminar aviso (admin)
// @Tags         announcements
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del aviso"
// @Success      200  {object}  dto.MutationResponse[dto.AnnouncementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error { return h.del(c) }
