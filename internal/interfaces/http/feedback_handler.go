package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// FeedbackHandler maneja las peticiones HTTP para feedbacks.
type FeedbackHandler struct {
	listUC *usecase.ListUseCase[entity.Feedback]
	uc     *usecase.FeedbackUseCase
	list   fiber.Handler
}

// NewFeedbackHandler construye el handler.
func NewFeedbackHandler(listUC *usecase.ListUseCase[entity.Feedback], uc *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{
		listUC: listUC,
		uc:     uc,
		list:   listEndpoint(listUC, dto.ToFeedbackResponse),
	}
}

// List godoc
// @Summary      Listar feedbacks (públicos y propios; admin ve todos)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por mensaje, autor o producto"
// @Success      200  {object}  dto.ListResponse[dto.FeedbackResponse]
// @Router       /api/feedback [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error { return h.list(c) }

// Create godoc
// @Summary      Dejar un feedback
// @Tags         feedback
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FeedbackRequest  true  "Datos del feedback"
// @Success      201   {object}  dto.FeedbackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var in dto.FeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validateFeedback(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}

	fb, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToFeedbackResponse(*fb))
}

// Update godoc
// @Summary      Editar un feedback propio (admin puede editar cualquiera)
// @Tags         feedback
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del feedback"
// @Param        body  body  dto.FeedbackRequest  true  "Datos del feedback"
// @Success      200   {object}  dto.MutationResponse[dto.FeedbackResponse]
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/feedback/{id} [put]
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.FeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validateFeedback(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}

	existing, ok := h.ownedFeedback(c, id)
	if !ok {
		return nil
	}

	existing.Profession = in.Profession
	existing.FeedbackType = in.FeedbackType
	existing.Product = in.Product
	existing.Message = in.Message
	existing.Rating = in.Rating
	existing.IsPublic = in.IsPublic

	res := h.listUC.Manager(ownerScope(c)).Update(c.Context(), id, existing, nil, nil, nil)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToFeedbackResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToFeedbackResponse))
}

// Delete godoc
// @Summary      Eliminar un feedback propio (admin puede eliminar cualquiera)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del feedback"
// @Success      200  {object}  dto.MutationResponse[dto.FeedbackResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if _, ok := h.ownedFeedback(c, id); !ok {
		return nil
	}

	res := h.listUC.Manager(ownerScope(c)).Delete(c.Context(), id, nil)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToFeedbackResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToFeedbackResponse))
}

// Summary godoc
// @Summary      Resumen de valoraciones (positivas >= 4 estrellas)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        feedback_type  query  string  true   "general o product"
// @Param        product        query  string  false  "Nombre del producto (solo para type=product)"
// @Success      200  {object}  dto.RatingSummaryResponse
// @Router       /api/feedback/summary [get]
func (h *FeedbackHandler) Summary(c *fiber.Ctx) error {
	feedbackType := c.Query("feedback_type", entity.FeedbackGeneral)
	if feedbackType != entity.FeedbackGeneral && feedbackType != entity.FeedbackProduct {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "feedback_type inválido"})
	}

	summary, err := h.uc.Summary(c.Context(), feedbackType, c.Query("product"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}

// ownedFeedback carga el feedback y verifica que pertenezca al usuario
// autenticado (los admin acceden a cualquiera). Si la verificación falla,
// escribe la respuesta HTTP y devuelve ok=false.
func (h *FeedbackHandler) ownedFeedback(c *fiber.Ctx, id int64) (*entity.Feedback, bool) {
	rec, err := h.listUC.Store().GetByID(c.Context(), id)
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		return nil, false
	}
	if rec == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "feedback no encontrado"})
		return nil, false
	}
	if GetRole(c) != entity.RoleAdmin && rec.UserID != GetUserID(c) {
		_ = c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puedes modificar feedbacks de otros usuarios"})
		return nil, false
	}
	return rec, true
}

func validateFeedback(in dto.FeedbackRequest) string {
	if in.FeedbackType != entity.FeedbackGeneral && in.FeedbackType != entity.FeedbackProduct {
		return "feedback_type debe ser general o product"
	}
	if in.FeedbackType == entity.FeedbackProduct && in.Product == "" {
		return "product es requerido para feedbacks de producto"
	}
	if in.Message == "" {
		return "message es requerido"
	}
	if in.Rating < 1 || in.Rating > 5 {
		return "rating debe estar entre 1 y 5"
	}
	return ""
}
