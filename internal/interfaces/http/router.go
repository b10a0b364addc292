package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/auth"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// ServerConfig configuración del servidor Fiber. WriteTimeout queda en 0:
// fasthttp fija el deadline de escritura una sola vez por respuesta y no lo
// renueva mientras corre un BodyStreamWriter, así que cualquier valor distinto
// de cero cortaría los streams SSE de /api/events a los N segundos aunque
// sigan emitiendo eventos.
func ServerConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:     appName,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	}
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	AnnouncementUC *usecase.ListUseCase[entity.Announcement]
	ActivityUC     *usecase.ListUseCase[entity.Activity]
	BookingListUC  *usecase.ListUseCase[entity.Booking]
	BookingUC      *usecase.BookingUseCase
	ApptListUC     *usecase.ListUseCase[entity.Appointment]
	ApptUC         *usecase.AppointmentUseCase
	ProductUC      *usecase.ListUseCase[entity.Product]
	OrderListUC    *usecase.ListUseCase[entity.Order]
	OrderUC        *usecase.OrderUseCase
	TrainingUC     *usecase.ListUseCase[entity.Training]
	RegListUC      *usecase.ListUseCase[entity.TrainingRegistration]
	RegUC          *usecase.RegistrationUseCase
	FeedbackListUC *usecase.ListUseCase[entity.Feedback]
	FeedbackUC     *usecase.FeedbackUseCase
	NotificationUC *usecase.NotificationUseCase
	DashboardUC    *usecase.DashboardUseCase
	CarouselUC     *usecase.ListUseCase[entity.CarouselSlide]
	Events         *EventsHandler
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público, /me requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Announcements (lectura autenticada, mutación admin)
	announcements := protected.Group("/announcements")
	announcementHandler := NewAnnouncementHandler(deps.AnnouncementUC)
	announcements.Get("/", announcementHandler.List)
	announcements.Get("/:id", announcementHandler.GetByID)
	announcements.Post("/", adminOnly, announcementHandler.Create)
	announcements.Put("/:id", adminOnly, announcementHandler.Update)
	announcements.Delete("/:id", adminOnly, announcementHandler.Delete)

	// Activities (lectura autenticada, mutación admin)
	activities := protected.Group("/activities")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Get("/", activityHandler.List)
	activities.Get("/:id", activityHandler.GetByID)
	activities.Post("/", adminOnly, activityHandler.Create)
	activities.Put("/:id", adminOnly, activityHandler.Update)
	activities.Delete("/:id", adminOnly, activityHandler.Delete)

	// Bookings (el usuario crea y ve las suyas; el admin gestiona todas)
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingListUC, deps.BookingUC)
	bookings.Get("/", bookingHandler.List)
	bookings.Post("/", bookingHandler.Create)
	bookings.Patch("/:id/status", adminOnly, bookingHandler.UpdateStatus)
	bookings.Delete("/:id", adminOnly, bookingHandler.Delete)

	// Appointments (mismo esquema que las reservas)
	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.ApptListUC, deps.ApptUC)
	appointments.Get("/", appointmentHandler.List)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Patch("/:id/status", adminOnly, appointmentHandler.UpdateStatus)
	appointments.Delete("/:id", adminOnly, appointmentHandler.Delete)

	// Products (lectura autenticada, mutación admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Orders (el usuario compra y ve los suyos; el admin gestiona todos)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderListUC, deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Patch("/:id/status", adminOnly, orderHandler.UpdateStatus)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)

	// Trainings e inscripciones
	trainings := protected.Group("/trainings")
	trainingHandler := NewTrainingHandler(deps.TrainingUC, deps.RegListUC, deps.RegUC)
	trainings.Get("/", trainingHandler.List)
	trainings.Get("/:id", trainingHandler.GetByID)
	trainings.Post("/", adminOnly, trainingHandler.Create)
	trainings.Put("/:id", adminOnly, trainingHandler.Update)
	trainings.Delete("/:id", adminOnly, trainingHandler.Delete)
	trainings.Post("/:id/register", trainingHandler.Register)

	registrations := protected.Group("/registrations")
	registrations.Get("/", trainingHandler.ListRegistrations)
	registrations.Patch("/:id/status", adminOnly, trainingHandler.UpdateRegistrationStatus)

	// Feedback
	feedback := protected.Group("/feedback")
	feedbackHandler := NewFeedbackHandler(deps.FeedbackListUC, deps.FeedbackUC)
	feedback.Get("/", feedbackHandler.List)
	feedback.Get("/summary", feedbackHandler.Summary)
	feedback.Post("/", feedbackHandler.Create)
	feedback.Put("/:id", feedbackHandler.Update)
	feedback.Delete("/:id", feedbackHandler.Delete)

	// Notifications (siempre acotadas al usuario del token)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.Feed)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/read", notificationHandler.DeleteRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Dashboard y carrusel
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.CarouselUC)
	protected.Get("/dashboard", dashboardHandler.Overview)
	carousel := protected.Group("/carousel")
	carousel.Get("/", dashboardHandler.ListSlides)
	carousel.Post("/", adminOnly, dashboardHandler.CreateSlide)
	carousel.Put("/order", adminOnly, dashboardHandler.ReorderSlides)
	carousel.Put("/:id", adminOnly, dashboardHandler.UpdateSlide)
	carousel.Delete("/:id", adminOnly, dashboardHandler.DeleteSlide)

	// Listados en vivo por SSE
	if deps.Events != nil {
		protected.Get("/events/:table", deps.Events.Stream)
	}
}
