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

// RegistrationUseCase casos de uso de inscripciones a capacitaciones.
type RegistrationUseCase struct {
	registrations repository.RegistrationRepository
	notifier      *Notifier
}

// NewRegistrationUseCase construye el caso de uso de inscripciones.
func NewRegistrationUseCase(registrations repository.RegistrationRepository, notifier *Notifier) *RegistrationUseCase {
	return &RegistrationUseCase{registrations: registrations, notifier: notifier}
}

// Create inscribe al usuario autenticado en una capacitación.
func (uc *RegistrationUseCase) Create(ctx context.Context, ident jwt.Identity, in dto.RegistrationRequest) (*entity.TrainingRegistration, error) {
	reg := &entity.TrainingRegistration{
		TrainingID:   in.TrainingID,
		TrainingName: in.TrainingName,
		UserID:       ident.UserID,
		UserName:     ident.FullName,
		UserEmail:    ident.Email,
		Status:       entity.StatusPending,
	}
	if err := uc.registrations.Insert(ctx, reg); err != nil {
		return nil, err
	}

	uc.notifier.NotifyAdmins(ctx, entity.Notification{
		Type:    NotifNewRegistration,
		Title:   "Nueva inscripción",
		Message: fmt.Sprintf("%s se inscribió a %s", reg.UserName, reg.TrainingName),
		Data:    map[string]any{"registration_id": reg.ID, "training_id": reg.TrainingID},
		Route:   "/admin/trainings",
	})
	return reg, nil
}

// UpdateStatus cambia el estado de una inscripción (solo admin) y notifica al dueño.
func (uc *RegistrationUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*entity.TrainingRegistration, error) {
	reg, err := uc.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}

	reg.Status = status
	if err := uc.registrations.Update(ctx, id, reg); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(ctx, reg.UserID, entity.Notification{
		Type:    NotifRegistration,
		Title:   "Estado de tu inscripción",
		Message: fmt.Sprintf("Tu inscripción a %s ahora está %s", reg.TrainingName, status),
		Data:    map[string]any{"registration_id": reg.ID, "status": status},
		Route:   "/trainings",
	})
	return reg, nil
}
