package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/audit"
	"github.com/profislots/profislots-api/internal/config"
	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/handlers"
	infraRepo "github.com/profislots/profislots-api/internal/infra/repository"
	"github.com/profislots/profislots-api/internal/media"
	"github.com/profislots/profislots-api/internal/middleware"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
	ucAppointment "github.com/profislots/profislots-api/internal/usecase/appointment"
)

// Infra carries the process-wide services built in main. Redis and
// Photos may be nil.
type Infra struct {
	Log    logrus.FieldLogger
	Audit  *audit.Dispatcher
	Redis  *redis.Client
	Photos handlers.PhotoStore
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================

	// ClientIP keys the auth rate limit, so forwarded headers only count
	// when they come from a configured proxy.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		infra.Log.WithError(err).Warn("invalid TRUSTED_PROXIES, ignoring forwarded headers")
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.LoggerMiddleware(infra.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	issuer := session.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	var revoker session.Revoker = session.NopRevoker{}
	var scripter redis.Scripter
	if infra.Redis != nil {
		revoker = session.NewRedisRevoker(infra.Redis)
		scripter = infra.Redis
	}
	authLimiter := middleware.NewRateLimiter(scripter, cfg.AuthRateLimit, time.Minute, "rl:auth", infra.Log)

	hours := defaultHours(cfg)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailableSlots(appointmentRepo, hours)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, availabilityUC, infra.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, infra.Audit)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, infra.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, infra.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, issuer, revoker, infra.Audit)
	meHandler := handlers.NewMeHandler(db, infra.Audit)
	dashboardHandler := handlers.NewDashboardHandler(db)

	serviceHandler := handlers.NewServiceHandler(db, infra.Audit)
	staffHandler := handlers.NewStaffHandler(db, infra.Audit, media.NewProcessor(), infra.Photos)
	customerHandler := handlers.NewCustomerHandler(db, infra.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		confirmAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		availabilityUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, appointmentRepo, availabilityUC, createAppointmentUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/staff", publicHandler.ListStaff)
			publicAPI.GET("/available-slots", publicHandler.AvailableSlots)
			publicAPI.POST("/appointments", publicHandler.Book)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
			auth.POST("/login", authLimiter.Middleware(), authHandler.Login)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(issuer, revoker, infra.Log))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/salon", meHandler.GetSalon)
			secured.PATCH("/me/salon", meHandler.UpdateSalon)

			secured.GET("/dashboard/stats", dashboardHandler.Stats)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/staff", staffHandler.List)
			secured.POST("/staff", staffHandler.Create)
			secured.GET("/staff/:id", staffHandler.Get)
			secured.PUT("/staff/:id", staffHandler.Update)
			secured.DELETE("/staff/:id", staffHandler.Delete)
			secured.POST("/staff/:id/photo", staffHandler.UploadPhoto)

			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.PUT("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/date/:date", appointmentHandler.ListByDate)
			secured.GET("/appointments/available-slots", appointmentHandler.AvailableSlots)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PUT("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

// defaultHours applies to salons without their own hours. Malformed
// settings fall back to 08:00-18:00 in 30 minute steps.
func defaultHours(cfg *config.Config) domain.BusinessHours {
	fallback := domain.BusinessHours{
		Open:  domain.MustClock("08:00"),
		Close: domain.MustClock("18:00"),
		Step:  30 * time.Minute,
	}
	return domain.HoursFor(&models.Salon{
		OpeningTime:     cfg.DefaultOpeningTime,
		ClosingTime:     cfg.DefaultClosingTime,
		SlotStepMinutes: cfg.DefaultSlotStep,
	}, fallback)
}
