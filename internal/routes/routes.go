package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medsched/outpatient-api/internal/audit"
	"github.com/medsched/outpatient-api/internal/cache"
	"github.com/medsched/outpatient-api/internal/clock"
	"github.com/medsched/outpatient-api/internal/config"
	"github.com/medsched/outpatient-api/internal/handlers"
	infraRepo "github.com/medsched/outpatient-api/internal/infra/repository"
	"github.com/medsched/outpatient-api/internal/timezone"
	ucBooking "github.com/medsched/outpatient-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, masterCache *cache.MasterData, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	clk := clock.System(timezone.Location(cfg.Timezone))

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	bookUC := ucBooking.NewBookAppointment(
		appointmentRepo,
		clk,
		auditDispatcher,
	)

	confirmUC := ucBooking.NewConfirmVisit(
		appointmentRepo,
		clk,
		auditDispatcher,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		appointmentRepo,
		clk,
		auditDispatcher,
	)

	deleteUC := ucBooking.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listUC := ucBooking.NewListAppointments(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	departmentHandler := handlers.NewDepartmentHandler(db, masterCache)
	doctorHandler := handlers.NewDoctorHandler(db, masterCache)
	patientHandler := handlers.NewPatientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		cfg.Timezone,
		bookUC,
		confirmUC,
		cancelUC,
		deleteUC,
		listUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// MASTER DATA
		// ------------------------------
		api.POST("/departments", departmentHandler.Create)
		api.GET("/departments", departmentHandler.List)

		api.POST("/doctors", doctorHandler.Create)
		api.GET("/doctors", doctorHandler.List)

		api.POST("/patients", patientHandler.Create)
		api.GET("/patients", patientHandler.List)
		api.GET("/patients/:id/appointments", appointmentHandler.ListByPatient)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
