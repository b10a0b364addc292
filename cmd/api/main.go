package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/tu-usuario/agroportal-api/docs"
	"github.com/tu-usuario/agroportal-api/internal/application/auth"
	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/agroportal-api/internal/infrastructure/realtime"
	"github.com/tu-usuario/agroportal-api/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/agroportal-api/internal/interfaces/http"
	"github.com/tu-usuario/agroportal-api/pkg/config"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// @title           AgroPortal API
// @version         1.0
// @description     API del portal de servicios agropecuarios: avisos, actividades, reservas, citas, productos, pedidos, capacitaciones y feedback.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de objetos")
	}

	// Relay de cambios: triggers → pg_notify → hub en proceso → SSE.
	hub := realtime.NewHub()
	defer hub.Close()
	listenerCtx, stopListener := context.WithCancel(ctx)
	defer stopListener()
	listener := realtime.NewListener(cfg.DB.ConnectionString(), cfg.Realtime.Channel, hub, log)
	go listener.Run(listenerCtx)

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	announcementRepo := postgres.NewAnnouncementRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	trainingRepo := postgres.NewTrainingRepository(pool)
	registrationRepo := postgres.NewRegistrationRepository(pool)
	feedbackRepo := postgres.NewFeedbackRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	carouselRepo := postgres.NewCarouselRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	notifier := usecase.NewNotifier(notificationRepo, userRepo, cfg.Admin, log)
	authUC := auth.NewAuthUseCase(userRepo, cfg.Admin, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	announcementUC := usecase.NewListUseCase(announcementRepo, store, log)
	activityUC := usecase.NewListUseCase(activityRepo, store, log)
	bookingListUC := usecase.NewListUseCase(bookingRepo, nil, log)
	appointmentListUC := usecase.NewListUseCase(appointmentRepo, nil, log)
	productUC := usecase.NewListUseCase(productRepo, store, log)
	orderListUC := usecase.NewListUseCase(orderRepo, nil, log)
	trainingUC := usecase.NewListUseCase(trainingRepo, store, log)
	registrationListUC := usecase.NewListUseCase(registrationRepo, nil, log)
	feedbackListUC := usecase.NewListUseCase(feedbackRepo, nil, log)
	carouselUC := usecase.NewListUseCase(carouselRepo, store, log)

	bookingUC := usecase.NewBookingUseCase(bookingRepo, notifier)
	appointmentUC := usecase.NewAppointmentUseCase(appointmentRepo, notifier)
	orderUC := usecase.NewOrderUseCase(orderRepo, txRunner, notifier, log)
	registrationUC := usecase.NewRegistrationUseCase(registrationRepo, notifier)
	feedbackUC := usecase.NewFeedbackUseCase(feedbackRepo, notifier)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	dashboardUC := usecase.NewDashboardUseCase(carouselRepo, dashboardRepo)

	// Streams SSE por tabla
	events := httpRouter.NewEventsHandler(hub, log)
	httpRouter.RegisterStream(events, announcementUC, dto.ToAnnouncementResponse)
	httpRouter.RegisterStream(events, activityUC, dto.ToActivityResponse)
	httpRouter.RegisterStream(events, bookingListUC, dto.ToBookingResponse)
	httpRouter.RegisterStream(events, appointmentListUC, dto.ToAppointmentResponse)
	httpRouter.RegisterStream(events, productUC, dto.ToProductResponse)
	httpRouter.RegisterStream(events, orderListUC, dto.ToOrderResponse)
	httpRouter.RegisterStream(events, trainingUC, dto.ToTrainingResponse)
	httpRouter.RegisterStream(events, registrationListUC, dto.ToRegistrationResponse)
	httpRouter.RegisterStream(events, feedbackListUC, dto.ToFeedbackResponse)
	httpRouter.RegisterStream(events, carouselUC, dto.ToCarouselSlideResponse)
	events.RegisterNotificationsStream(notificationUC)

	app := fiber.New(httpRouter.ServerConfig(cfg.App.Name))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroPortal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		AnnouncementUC: announcementUC,
		ActivityUC:     activityUC,
		BookingListUC:  bookingListUC,
		BookingUC:      bookingUC,
		ApptListUC:     appointmentListUC,
		ApptUC:         appointmentUC,
		ProductUC:      productUC,
		OrderListUC:    orderListUC,
		OrderUC:        orderUC,
		TrainingUC:     trainingUC,
		RegListUC:      registrationListUC,
		RegUC:          registrationUC,
		FeedbackListUC: feedbackListUC,
		FeedbackUC:     feedbackUC,
		NotificationUC: notificationUC,
		DashboardUC:    dashboardUC,
		CarouselUC:     carouselUC,
		Events:         events,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	stopListener()
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
