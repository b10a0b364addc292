package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/jwt"
)

// AppointmentUseCase casos de uso de citas de asesoría.
type AppointmentUseCase struct {
	appointments repository.AppointmentRepository
	notifier     *Notifier
}

// NewAppointmentUseCase construye el caso de uso de citas.
func NewAppointmentUseCase(appointments repository.AppointmentRepository, notifier *Notifier) *AppointmentUseCase {
	return &AppointmentUseCase{appointments: appointments, notifier: notifier}
}

// Create crea una cita del usuario autenticado.
func (uc *AppointmentUseCase) Create(ctx context.Context, ident jwt.Identity, in dto.AppointmentRequest) (*entity.Appointment, error) {
	appt := &entity.Appointment{
		UserID:          ident.UserID,
		FullName:        in.FullName,
		Email:           in.Email,
		ContactNumber:   in.ContactNumber,
		AppointmentType: in.AppointmentType,
		Date:            in.Date,
		Time:            in.Time,
		Note:            in.Note,
		Status:          entity.StatusPending,
	}
	if err := uc.appointments.Insert(ctx, appt); err != nil {
		return nil, err
	}

	uc.notifier.NotifyAdmins(ctx, entity.Notification{
		Type:    NotifNewAppointment,
		Title:   "Nueva cita de asesoría",
		Message: fmt.Sprintf("%s solicitó una cita de %s para el %s a las %s", appt.FullName, appt.AppointmentType, appt.Date, appt.Time),
		Data:    map[string]any{"appointment_id": appt.ID},
		Route:   "/admin/appointments",
	})
	return appt, nil
}

// UpdateStatus cambia el estado de una cita (solo admin) y notifica al dueño.
func (uc *AppointmentUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Appointment, error) {
	appt, err := uc.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}

	appt.Status = status
	if err := uc.appointments.Update(ctx, id, appt); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(ctx, appt.UserID, entity.Notification{
		Type:    NotifAppointmentStatus,
		Title:   "Estado de tu cita",
		Message: fmt.Sprintf("Tu cita del %s a las %s ahora está %s", appt.Date, appt.Time, status),
		Data:    map[string]any{"appointment_id": appt.ID, "status": status},
		Route:   "/appointments",
	})
	return appt, nil
}
