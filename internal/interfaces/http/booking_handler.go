package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// BookingHandler maneja las peticiones HTTP para reservas de actividades.
// Los admins ven todas; los usuarios solo las propias.
type BookingHandler struct {
	listUC *usecase.ListUseCase[entity.Booking]
	uc     *usecase.BookingUseCase
	list   fiber.Handler
	del    fiber.Handler
}

// NewBookingHandler construye el handler.
func NewBookingHandler(listUC *usecase.ListUseCase[entity.Booking], uc *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		listUC: listUC,
		uc:     uc,
		list:   listEndpoint(listUC, dto.ToBookingResponse),
		del:    deleteEndpoint(listUC, dto.ToBookingResponse, nil),
	}
}

// List godoc
// @Summary      Listar reservas (admin ve todas, usuario las propias)
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por actividad o usuario"
// @Success      200  {object}  dto.ListResponse[dto.BookingResponse]
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error { return h.list(c) }

// Create godoc
// @Summary      Crear reserva
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookingRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.BookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ActivityID == 0 || in.ActivityName == "" || in.BookingDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "activity_id, activity_name y booking_date son requeridos"})
	}

	booking, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBookingResponse(*booking))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una reserva (admin)
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la reserva"
// @Param        body  body  dto.BookingStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.BookingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.BookingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}

	booking, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reserva no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToBookingResponse(*booking))
}

// Delete godoc
// @Summary      Eliminar reserva (admin)
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la reserva"
// @Success      200  {object}  dto.MutationResponse[dto.BookingResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *fiber.Ctx) error { return h.del(c) }
