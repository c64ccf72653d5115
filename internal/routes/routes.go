package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
	"github.com/BruksfildServices01/escala-voluntarios/internal/handlers"
	infraRepo "github.com/BruksfildServices01/escala-voluntarios/internal/infra/repository"
	"github.com/BruksfildServices01/escala-voluntarios/internal/middleware"
	"github.com/BruksfildServices01/escala-voluntarios/internal/ratelimit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
	ucArea "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/area"
	ucBooking "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/booking"
	ucVolunteer "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/volunteer"
	"github.com/BruksfildServices01/escala-voluntarios/internal/validators"
)

// Deps são as dependências com ciclo de vida controlado pelo main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Audit  *audit.Dispatcher
	Clock  timezone.Clock

	// Limiter nil desliga o limite do agendamento público.
	Limiter ratelimit.Limiter
	// Archiver nil desliga o arquivamento de exportações.
	Archiver ucBooking.Archiver
}

func RegisterRoutes(r *gin.Engine, d Deps) error {

	if err := validators.RegisterGin(); err != nil {
		return err
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB, d.Log)
	areaRepo := infraRepo.NewAreaGormRepository(d.DB, d.Log)
	volunteerRepo := infraRepo.NewVolunteerGormRepository(d.DB, d.Log)

	auditLogger := audit.New(d.DB)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	bookShiftUC := ucBooking.NewBookShift(bookingRepo, d.Audit, d.Log)
	availableSlotsUC := ucBooking.NewAvailableSlots(bookingRepo)
	monthlySummaryUC := ucBooking.NewMonthlySummary(bookingRepo)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, d.Audit)
	dashboardUC := ucBooking.NewDashboard(bookingRepo, d.Clock)
	exportMonthUC := ucBooking.NewExportMonth(bookingRepo, d.Archiver, d.Audit, d.Clock)

	areaUC := ucArea.NewManage(areaRepo, d.Audit)

	volunteerUC := ucVolunteer.NewManage(volunteerRepo, d.Audit)
	eligibleUC := ucVolunteer.NewEligibleAreasByPhone(volunteerRepo)
	rosterUC := ucVolunteer.NewRoster(volunteerRepo, areaRepo)
	inactiveUC := ucVolunteer.NewInactive(volunteerRepo, d.Clock, d.Config.InactiveDays)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(d.Config)
	if err != nil {
		return err
	}

	publicHandler := handlers.NewPublicHandler(
		areaUC,
		eligibleUC,
		availableSlotsUC,
		monthlySummaryUC,
		bookShiftUC,
		d.Clock,
	)
	areaHandler := handlers.NewAreaHandler(areaUC)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerUC, rosterUC, inactiveUC)
	bookingHandler := handlers.NewBookingHandler(deleteBookingUC, dashboardUC, exportMonthUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/areas", publicHandler.ListAreas)
			publicAPI.GET("/sundays", publicHandler.Sundays)
			publicAPI.GET("/volunteer/areas", publicHandler.VolunteerAreas)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/summary", publicHandler.Summary)

			booking := []gin.HandlerFunc{publicHandler.CreateBooking}
			if d.Limiter != nil {
				booking = append([]gin.HandlerFunc{middleware.RateLimit(d.Limiter, d.Log)}, booking...)
			}
			publicAPI.POST("/bookings", booking...)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)

		// ------------------------------
		// 🔐 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Config))
		{
			admin.GET("/areas", areaHandler.List)
			admin.POST("/areas", areaHandler.Create)
			admin.GET("/areas/:id", areaHandler.Get)
			admin.PUT("/areas/:id", areaHandler.Update)
			admin.DELETE("/areas/:id", areaHandler.Delete)

			admin.GET("/volunteers", volunteerHandler.List)
			admin.POST("/volunteers", volunteerHandler.Create)
			admin.GET("/volunteers/inactive", volunteerHandler.Inactive)
			admin.GET("/volunteers/:id", volunteerHandler.Get)
			admin.PUT("/volunteers/:id", volunteerHandler.Update)
			admin.DELETE("/volunteers/:id", volunteerHandler.Delete)

			admin.DELETE("/bookings/:id", bookingHandler.Delete)
			admin.GET("/dashboard", bookingHandler.Dashboard)
			admin.GET("/export", bookingHandler.ExportCSV)
			admin.POST("/export/archive", bookingHandler.Archive)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
