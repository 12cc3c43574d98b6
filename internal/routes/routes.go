package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	"github.com/BruksfildServices01/agenda-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/agenda-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger

	Cache   *infraRepo.ProviderCache
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter

	// Gateway is nil when PIX is not configured.
	Gateway payment.Gateway

	// EmailChecker defaults to a DNS lookup.
	EmailChecker handlers.EmailChecker

	// Now overrides the scheduling clock; nil means time.Now.
	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, d.Cache, d.Log)

	// ======================================================
	// 🧠 USE CASES (APPOINTMENTS)
	// ======================================================
	useCases := handlers.NewAppointmentUseCases(
		appointmentRepo,
		ucAppointment.Deps{
			Audit:       d.Audit,
			Log:         d.Log,
			Now:         d.Now,
			SlotMinutes: cfg.SlotMinutes,
		},
		d.Gateway,
		time.Duration(cfg.PixExpirationMinutes)*time.Minute,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log, d.EmailChecker)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	providerHandler := handlers.NewProviderHandler(d.DB, d.Cache, d.Audit, d.Log)

	serviceHandler := handlers.NewServiceHandler(d.DB, d.Log)
	employeeHandler := handlers.NewEmployeeHandler(d.DB, d.Log)
	timeExclusionHandler := handlers.NewTimeExclusionHandler(d.DB, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(useCases, d.Log)
	availabilityHandler := handlers.NewAvailabilityHandler(useCases, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Log)

	publicHandler := handlers.NewPublicHandler(d.DB, useCases, d.Log)
	paymentHandler := handlers.NewPaymentHandler(useCases, d.Log)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		if d.Limiter != nil {
			publicAPI.Use(middleware.RateLimit(d.Limiter, d.Log))
		}
		{
			publicAPI.GET("/:link", publicHandler.GetProvider)
			publicAPI.GET("/:link/slots", publicHandler.Slots)
			publicAPI.POST("/:link/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:link/appointments/:token", publicHandler.GetAppointment)
			publicAPI.PATCH("/:link/appointments/:token/reschedule", publicHandler.RescheduleAppointment)
		}

		// ------------------------------
		// 💳 WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/mercadopago", paymentHandler.MercadoPagoWebhook)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		auth := api.Group("/auth")
		if d.Limiter != nil {
			auth.Use(middleware.RateLimit(d.Limiter, d.Log))
		}
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/provider", providerHandler.GetConfig)
			secured.PATCH("/me/provider", providerHandler.UpdateConfig)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id/appointments", clientHandler.History)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)
			secured.PATCH("/me/employees/:id", employeeHandler.Update)
			secured.DELETE("/me/employees/:id", employeeHandler.Delete)

			secured.GET("/me/time-exclusions", timeExclusionHandler.List)
			secured.POST("/me/time-exclusions", timeExclusionHandler.Create)
			secured.PUT("/me/time-exclusions/:id", timeExclusionHandler.Update)
			secured.DELETE("/me/time-exclusions/:id", timeExclusionHandler.Delete)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/me/availability/check", availabilityHandler.Check)
			secured.GET("/me/availability/slots", availabilityHandler.Slots)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
