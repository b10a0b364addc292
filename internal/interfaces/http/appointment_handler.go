package http

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// Formatos de fecha y hora de las citas. Se validan como texto plano: el
// cliente agenda en hora local de la finca, sin zonas horarias.
var (
	apptDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	apptTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// AppointmentHandler maneja las peticiones HTTP para citas de asesoría.
type AppointmentHandler struct {
	listUC *usecase.ListUseCase[entity.Appointment]
	uc     *usecase.AppointmentUseCase
	list   fiber.Handler
	del    fiber.Handler
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(listUC *usecase.ListUseCase[entity.Appointment], uc *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{
		listUC: listUC,
		uc:     uc,
		list:   listEndpoint(listUC, dto.ToAppointmentResponse),
		del:    deleteEndpoint(listUC, dto.ToAppointmentResponse, nil),
	}
}

// List godoc
// @Summary      Listar citas (admin ve todas, usuario las propias)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por nombre, correo o tipo"
// @Success      200  {object}  dto.ListResponse[dto.AppointmentResponse]
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error { return h.list(c) }

// Create godoc
// @Summary      Solicitar cita de asesoría
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppointmentRequest  true  "Datos de la cita"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FullName == "" || in.Email == "" || in.ContactNumber == "" || in.AppointmentType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "full_name, email, contact_number y appointment_type son requeridos"})
	}
	if !apptDateRe.MatchString(in.Date) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
	}
	if !apptTimeRe.MatchString(in.Time) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "time debe tener formato HH:MM"})
	}

	appt, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAppointmentResponse(*appt))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una cita (admin)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la cita"
// @Param        body  body  dto.AppointmentStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.AppointmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}

	appt, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cita no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToAppointmentResponse(*appt))
}

// Delete godoc
// @Summary      Eliminar cita (admin)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la cita"
// @Success      200  {object}  dto.MutationResponse[dto.AppointmentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error { return h.del(c) }
