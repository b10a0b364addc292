package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// ActivityHandler maneja las peticiones HTTP para actividades de la granja.
type ActivityHandler struct {
	uc   *usecase.ListUseCase[entity.Activity]
	list fiber.Handler
	get  fiber.Handler
	del  fiber.Handler
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ListUseCase[entity.Activity]) *ActivityHandler {
	return &ActivityHandler{
		uc:   uc,
		list: listEndpoint(uc, dto.ToActivityResponse),
		get:  getEndpoint(uc, dto.ToActivityResponse),
		del: deleteEndpoint(uc, dto.ToActivityResponse, func(a entity.Activity) []string {
			if a.ImageURL == "" {
				return nil
			}
			return []string{a.ImageURL}
		}),
	}
}

// List godoc
// @Summary      Listar actividades
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por nombre, descripción o tipo"
// @Success      200  {object}  dto.ListResponse[dto.ActivityResponse]
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error { return h.list(c) }

// GetByID godoc
// @Summary      Obtener actividad por ID
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la actividad"
// @Success      200  {object}  dto.ActivityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [get]
func (h *ActivityHandler) GetByID(c *fiber.Ctx) error { return h.get(c) }

// Create godoc
// @Summary      Crear actividad (admin)
// @Tags         activities
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.MutationResponse[dto.ActivityResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.ActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y type son requeridos"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)

	rec := &entity.Activity{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Capacity:    in.Capacity,
		Location:    in.Location,
		CreatedBy:   GetUserID(c),
	}
	res := h.uc.Manager("").Create(c.Context(), rec, files, func(r *entity.Activity, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	})
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToActivityResponse))
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(res, dto.ToActivityResponse))
}

// Update godoc
// @Summary      Actualizar actividad (admin)
// @Tags         activities
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "ID de la actividad"
// @Success      200  {object}  dto.MutationResponse[dto.ActivityResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [put]
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	existing, err := h.uc.Store().GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "actividad no encontrada"})
	}

	var in dto.ActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)

	rec := &entity.Activity{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Capacity:    in.Capacity,
		Location:    in.Location,
		ImageURL:    existing.ImageURL,
	}
	var replaced []string
	if len(files) > 0 && existing.ImageURL != "" {
		replaced = []string{existing.ImageURL}
	}
	res := h.uc.Manager("").Update(c.Context(), id, rec, files, func(r *entity.Activity, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	}, replaced)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToActivityResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToActivityResponse))
}

// Delete godoc
// @Summary      Eliminar actividad (admin)
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la actividad"
// @Success      200  {object}  dto.MutationResponse[dto.ActivityResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [delete]
func (h *ActivityHandler) Delete(c *fiber.Ctx) error { return h.del(c) }
