package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// TrainingHandler maneja capacitaciones y sus inscripciones.
type TrainingHandler struct {
	uc      *usecase.ListUseCase[entity.Training]
	regUC   *usecase.ListUseCase[entity.TrainingRegistration]
	regs    *usecase.RegistrationUseCase
	list    fiber.Handler
	get     fiber.Handler
	del     fiber.Handler
	regList fiber.Handler
}

// NewTrainingHandler construye el handler.
func NewTrainingHandler(uc *usecase.ListUseCase[entity.Training], regUC *usecase.ListUseCase[entity.TrainingRegistration], regs *usecase.RegistrationUseCase) *TrainingHandler {
	return &TrainingHandler{
		uc:    uc,
		regUC: regUC,
		regs:  regs,
		list:  listEndpoint(uc, dto.ToTrainingResponse),
		get:   getEndpoint(uc, dto.ToTrainingResponse),
		del: deleteEndpoint(uc, dto.ToTrainingResponse, func(t entity.Training) []string {
			if t.ImageURL == "" {
				return nil
			}
			return []string{t.ImageURL}
		}),
		regList: listEndpoint(regUC, dto.ToRegistrationResponse),
	}
}

// List godoc
// @Summary      Listar capacitaciones
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por nombre, descripción o lugar"
// @Success      200  {object}  dto.ListResponse[dto.TrainingResponse]
// @Router       /api/trainings [get]
func (h *TrainingHandler) List(c *fiber.Ctx) error { return h.list(c) }

// GetByID godoc
// @Summary      Obtener capacitación por ID
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la capacitación"
// @Success      200  {object}  dto.TrainingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trainings/{id} [get]
func (h *TrainingHandler) GetByID(c *fiber.Ctx) error { return h.get(c) }

// Create godoc
// @Summary      Crear capacitación (admin)
// @Tags         trainings
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.MutationResponse[dto.TrainingResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/trainings [post]
func (h *TrainingHandler) Create(c *fiber.Ctx) error {
	var in dto.TrainingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.StartDateTime.IsZero() || in.EndDateTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, start_date_time y end_date_time son requeridos"})
	}
	if in.EndDateTime.Before(in.StartDateTime) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date_time no puede ser anterior a start_date_time"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)

	rec := &entity.Training{
		Name:          in.Name,
		Description:   in.Description,
		Location:      in.Location,
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
		Topics:        in.Topics,
		Capacity:      in.Capacity,
		CreatedBy:     GetUserID(c),
	}
	res := h.uc.Manager("").Create(c.Context(), rec, files, func(r *entity.Training, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	})
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToTrainingResponse))
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(res, dto.ToTrainingResponse))
}

// Update godoc
// @Summary      Actualizar capacitación (admin)
// @Tags         trainings
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "ID de la capacitación"
// @Success      200  {object}  dto.MutationResponse[dto.TrainingResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trainings/{id} [put]
func (h *TrainingHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	existing, err := h.uc.Store().GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "capacitación no encontrada"})
	}

	var in dto.TrainingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	files, err := collectFiles(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer closeFiles(files)

	rec := &entity.Training{
		Name:          in.Name,
		Description:   in.Description,
		Location:      in.Location,
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
		Topics:        in.Topics,
		Capacity:      in.Capacity,
		ImageURL:      existing.ImageURL,
	}
	var replaced []string
	if len(files) > 0 && existing.ImageURL != "" {
		replaced = []string{existing.ImageURL}
	}
	res := h.uc.Manager("").Update(c.Context(), id, rec, files, func(r *entity.Training, urls []string) {
		if len(urls) > 0 {
			r.ImageURL = urls[0]
		}
	}, replaced)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToTrainingResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToTrainingResponse))
}

// Delete godoc
// @Summary      Eliminar capacitación (admin)
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la capacitación"
// @Success      200  {object}  dto.MutationResponse[dto.TrainingResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trainings/{id} [delete]
func (h *TrainingHandler) Delete(c *fiber.Ctx) error { return h.del(c) }

// ListRegistrations godoc
// @Summary      Listar inscripciones (admin ve todas, usuario las propias)
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por capacitación o usuario"
// @Success      200  {object}  dto.ListResponse[dto.RegistrationResponse]
// @Router       /api/trainings/registrations [get]
func (h *TrainingHandler) ListRegistrations(c *fiber.Ctx) error { return h.regList(c) }

// Register godoc
// @Summary      Inscribirse a una capacitación
// @Tags         trainings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrationRequest  true  "Capacitación"
// @Success      201   {object}  dto.RegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/trainings/registrations [post]
func (h *TrainingHandler) Register(c *fiber.Ctx) error {
	var in dto.RegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TrainingID == 0 || in.TrainingName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "training_id y training_name son requeridos"})
	}

	reg, err := h.regs.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRegistrationResponse(*reg))
}

// UpdateRegistrationStatus godoc
// @Summary      Cambiar estado de una inscripción (admin)
// @Tags         trainings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la inscripción"
// @Param        body  body  dto.RegistrationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trainings/registrations/{id}/status [patch]
func (h *TrainingHandler) UpdateRegistrationStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.RegistrationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}

	reg, err := h.regs.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inscripción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToRegistrationResponse(*reg))
}

// validStatus estados válidos para reservas, citas e inscripciones.
func validStatus(s string) bool {
	return s == entity.StatusPending || s == entity.StatusConfirmed || s == entity.StatusCancelled
}
