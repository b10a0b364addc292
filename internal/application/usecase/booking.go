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

// BookingUseCase casos de uso de reservas de actividades.
type BookingUseCase struct {
	bookings repository.BookingRepository
	notifier *Notifier
}

// NewBookingUseCase construye el caso de uso de reservas.
func NewBookingUseCase(bookings repository.BookingRepository, notifier *Notifier) *BookingUseCase {
	return &BookingUseCase{bookings: bookings, notifier: notifier}
}

// Create crea una reserva del usuario autenticado. Nombre y correo se
// desnormalizan desde la identidad del token, nunca del cuerpo.
func (uc *BookingUseCase) Create(ctx context.Context, ident jwt.Identity, in dto.BookingRequest) (*entity.Booking, error) {
	booking := &entity.Booking{
		ActivityID:   in.ActivityID,
		ActivityName: in.ActivityName,
		UserID:       ident.UserID,
		UserName:     ident.FullName,
		UserEmail:    ident.Email,
		BookingDate:  in.BookingDate,
		Status:       entity.StatusPending,
	}
	if err := uc.bookings.Insert(ctx, booking); err != nil {
		return nil, err
	}

	uc.notifier.NotifyAdmins(ctx, entity.Notification{
		Type:    NotifNewBooking,
		Title:   "Nueva reserva",
		Message: fmt.Sprintf("%s reservó %s", booking.UserName, booking.ActivityName),
		Data:    map[string]any{"booking_id": booking.ID, "activity_id": booking.ActivityID},
		Route:   "/admin/bookings",
	})
	return booking, nil
}

// UpdateStatus cambia el estado de una reserva (solo admin) y notifica al dueño.
func (uc *BookingUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Booking, error) {
	booking, err := uc.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}

	booking.Status = status
	if err := uc.bookings.Update(ctx, id, booking); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(ctx, booking.UserID, entity.Notification{
		Type:    NotifBookingStatus,
		Title:   "Estado de tu reserva",
		Message: fmt.Sprintf("Tu reserva de %s ahora está %s", booking.ActivityName, status),
		Data:    map[string]any{"booking_id": booking.ID, "status": status},
		Route:   "/bookings",
	})
	return booking, nil
}
