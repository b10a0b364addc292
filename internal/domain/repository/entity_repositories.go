package repository

import (
	"context"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// Puertos de persistencia por entidad. Todos comparten el puerto genérico
// ListStore; aquí solo se añaden las operaciones que se salen de ese molde.

// AnnouncementRepository persistencia de avisos. Búsqueda: title, description.
type AnnouncementRepository interface {
	ListStore[entity.Announcement]
}

// ActivityRepository persistencia de actividades. Búsqueda: name, description, type.
type ActivityRepository interface {
	ListStore[entity.Activity]
}

// BookingRepository persistencia de reservas (con alcance por usuario).
// Búsqueda: activity_name, user_name, user_email.
type BookingRepository interface {
	ListStore[entity.Booking]
}

// AppointmentRepository persistencia de citas (con alcance por usuario).
// Búsqueda: full_name, email, appointment_type.
type AppointmentRepository interface {
	ListStore[entity.Appointment]
}

// ProductRepository persistencia de productos. Búsqueda: name, category, description.
type ProductRepository interface {
	ListStore[entity.Product]
	// DecrementStock descuenta unidades de forma atómica; devuelve
	// domain.ErrInsufficientStock si el stock restante no alcanza.
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}

// OrderRepository persistencia de pedidos (con alcance por usuario).
// Búsqueda: product_name, buyer_name, buyer_email.
type OrderRepository interface {
	ListStore[entity.Order]
}

// TrainingRepository persistencia de capacitaciones. Búsqueda: name, description.
// Orden por defecto: start_date_time descendente.
type TrainingRepository interface {
	ListStore[entity.Training]
}

// RegistrationRepository persistencia de inscripciones a capacitaciones
// (con alcance por usuario). Búsqueda: training_name, user_name.
type RegistrationRepository interface {
	ListStore[entity.TrainingRegistration]
}

// FeedbackRepository persistencia de feedbacks. Para OwnerID no vacío el filtro
// es "is_public O propio", no propiedad estricta. Búsqueda: message, user_name, product.
type FeedbackRepository interface {
	ListStore[entity.Feedback]
	// RatingSummary cuenta positivos (rating >= 4) y negativos bajo el tipo dado;
	// product filtra por nombre (case-insensitive) cuando feedbackType es "product".
	RatingSummary(ctx context.Context, feedbackType, product string) (positive, negative int, err error)
}

// CarouselRepository persistencia de láminas del carrusel del dashboard.
type CarouselRepository interface {
	ListStore[entity.CarouselSlide]
	// ListActive devuelve las láminas activas ordenadas por order_index ascendente.
	ListActive(ctx context.Context) ([]entity.CarouselSlide, error)
	// UpdateOrder fija order_index = posición para cada ID en el orden recibido.
	UpdateOrder(ctx context.Context, slideIDs []int64) error
}
