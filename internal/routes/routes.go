package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucWaitlist "github.com/BruksfildServices01/barber-booking/internal/usecase/waitlist"
)

// Options carries the collaborators main decides on. Zero values fall back
// to the slog default logger, the system clock and no metrics.
type Options struct {
	Logger   *slog.Logger
	Notifier notification.Notifier
	Clock    timezone.Clock
	Registry *prometheus.Registry
}

// RegisterRoutes wires the whole API on r. The returned func drains the
// audit queue and must be called on shutdown.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, opts Options) func() {

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = timezone.SystemClock{}
	}

	var m *metrics.Scheduler
	if opts.Registry != nil {
		m = metrics.New(opts.Registry)
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	policy := domain.NewPolicy(cfg.Scheduling.SlotStepMinutes, cfg.Scheduling.MinLeadMinutes)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	waitlistRepo := infraRepo.NewWaitlistGormRepository(db)
	outboxRepo := infraRepo.NewOutboxGormRepository(db)
	financeRepo := infraRepo.NewFinanceGormRepository(db)
	workingHoursRepo := infraRepo.NewWorkingHoursGormRepository(db)
	tx := infraRepo.NewTransactor(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)

	var notifications *notification.Dispatcher
	if opts.Notifier != nil {
		notifications = notification.NewDispatcher(outboxRepo, opts.Notifier, logger)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, policy, clock, m)
	bookUC := ucAppointment.NewBookAppointment(appointmentRepo, tx, auditDispatcher, policy, clock, logger, m)
	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo, tx, waitlistRepo, outboxRepo, notifications, auditDispatcher, clock, logger, m,
	)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, tx, financeRepo, auditDispatcher, clock, m)
	confirmUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo, tx, outboxRepo, notifications, auditDispatcher, clock, logger, m,
	)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	joinWaitlistUC := ucWaitlist.NewJoin(appointmentRepo, waitlistRepo, availabilityUC, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		completeUC,
		cancelUC,
		confirmUC,
		listByDateUC,
		listByMonthUC,
		availabilityUC,
		logger,
	)
	publicHandler := handlers.NewPublicHandler(
		appointmentRepo, availabilityUC, bookUC, cancelUC, joinWaitlistUC, logger,
	)
	workingHoursHandler := handlers.NewWorkingHoursHandler(workingHoursRepo, logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/:slug/appointments/:id/cancel", publicHandler.CancelAppointment)
			publicAPI.POST("/:slug/waitlist", publicHandler.JoinWaitlist)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)
			secured.PUT("/working-hours/overrides/:date", workingHoursHandler.PutOverride)

			secured.GET("/availability", appointmentHandler.Availability)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher.Close
}
