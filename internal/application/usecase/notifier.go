package usecase

import (
	"context"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/config"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// Tipos de notificación que emite el portal.
const (
	NotifNewBooking        = "new_booking"
	NotifNewAppointment    = "new_appointment"
	NotifNewOrder          = "new_order"
	NotifNewRegistration   = "new_registration"
	NotifNewFeedback       = "new_feedback"
	NotifBookingStatus     = "booking_status_update"
	NotifOrderStatus       = "order_status_update"
	NotifAppointmentStatus = "appointment_status_update"
	NotifRegistration      = "registration_status_update"
)

// Notifier emite notificaciones en el feed de los usuarios. La entrega es
// best-effort: un fallo se registra y no interrumpe la operación que lo originó.
type Notifier struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	admins    config.AdminConfig
	log       *logger.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, admins config.AdminConfig, log *logger.Logger) *Notifier {
	return &Notifier{notifRepo: notifRepo, userRepo: userRepo, admins: admins, log: log}
}

// NotifyUser inserta una notificación en el feed del usuario dado.
func (n *Notifier) NotifyUser(ctx context.Context, userID string, notif entity.Notification) {
	if userID == "" {
		return
	}
	notif.UserID = userID
	if err := n.notifRepo.Insert(ctx, &notif); err != nil {
		n.log.Warn().Err(err).Str("user_id", userID).Str("type", notif.Type).Msg("No se pudo entregar la notificación")
	}
}

// NotifyAdmins inserta la notificación en el feed de cada admin de la lista
// blanca que exista como usuario registrado.
func (n *Notifier) NotifyAdmins(ctx context.Context, notif entity.Notification) {
	for _, email := range n.admins.Emails {
		admin, err := n.userRepo.FindByEmail(ctx, email)
		if err != nil {
			n.log.Warn().Err(err).Str("email", email).Msg("No se pudo resolver el admin para notificar")
			continue
		}
		if admin == nil {
			continue
		}
		n.NotifyUser(ctx, admin.ID, notif)
	}
}
