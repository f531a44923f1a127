package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/config"
	"github.com/BruksfildServices01/receptionist/internal/handlers"
	infraRepo "github.com/BruksfildServices01/receptionist/internal/infra/repository"
	"github.com/BruksfildServices01/receptionist/internal/lock"
	"github.com/BruksfildServices01/receptionist/internal/metrics"
	"github.com/BruksfildServices01/receptionist/internal/middleware"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/receptionist/internal/usecase/appointment"
	"github.com/BruksfildServices01/receptionist/internal/validators"
)

// Deps are the process-wide singletons the routes are wired from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Calendar *calendar.Holder
	Locker   lock.Locker
	Audit    *audit.Dispatcher
	Registry *prometheus.Registry
	Now      timezone.NowFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	validators.Register()

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.NewSchedulingMetrics(reg)

	var sink ucAppointment.AuditSink
	if d.Audit != nil {
		sink = d.Audit
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(m),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, d.Locker)
	auditLogger := audit.New(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	statsUC := ucAppointment.NewGetStats(appointmentRepo, d.Calendar, d.Now, d.Config.StatsCacheTTL)

	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		d.Calendar,
		sink,
		ucAppointment.BookingOptions{
			AutoConfirm:  d.Config.AutoConfirm,
			Alternatives: d.Config.AlternativeSlots,
			Now:          d.Now,
			Metrics:      m,
			Cache:        statsUC,
		},
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		d.Calendar,
		d.Config.DefaultDurationMin,
		d.Now,
		m,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(appointmentRepo, sink, m, statsUC)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)
	getUC := ucAppointment.NewGetAppointment(appointmentRepo)
	callerUC := ucAppointment.NewGetCaller(appointmentRepo)
	callLogUC := ucAppointment.NewCallLog(appointmentRepo, statsUC)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(d.Config)
	meHandler := handlers.NewMeHandler()
	publicHandler := handlers.NewPublicHandler(d.Calendar, availabilityUC, bookUC)
	appointmentHandler := handlers.NewAppointmentHandler(listUC, getUC, updateStatusUC, statsUC)
	callerHandler := handlers.NewCallerHandler(callerUC, callLogUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	adminHandler := handlers.NewAdminHandler(d.Calendar, sink)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(d.Config.RateLimitRPS),
		Burst: d.Config.RateLimitBurst,
	})

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/")
		public.Use(limiter.RateLimit())
		{
			public.GET("/services", publicHandler.ListServices)
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/availability", publicHandler.Availability)
			public.POST("/appointments", publicHandler.Book)
			public.POST("/auth/login", authHandler.Login)
		}

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(
			middleware.AuthMiddleware(d.Config.JWTSecret),
			middleware.RequireRole(middleware.RoleAdmin, middleware.RoleAgent),
		)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.GET("/stats", appointmentHandler.Stats)

			secured.GET("/callers/:phone", callerHandler.GetCaller)

			secured.POST("/calls", callerHandler.StartCall)
			secured.PATCH("/calls/:sid", callerHandler.UpdateCall)
			secured.GET("/calls", callerHandler.ListCalls)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(
			middleware.AuthMiddleware(d.Config.JWTSecret),
			middleware.RequireRole(middleware.RoleAdmin),
		)
		{
			admin.GET("/audit-logs", auditLogsHandler.List)
			admin.POST("/admin/config/reload", adminHandler.ReloadConfig)
		}
	}
}
