package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medsched/outpatient-api/internal/config"
	"github.com/medsched/outpatient-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Department{},
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Backstop constraints: the locked window check is the primary
	// defense against double booking, these partial unique indexes
	// guarantee the invariant even if that check ever has a gap.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uidx_appointments_doctor_slot
        ON appointments (doctor_id, visit_time)
        WHERE status <> 'cancelled'
    `)
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uidx_appointments_patient_slot
        ON appointments (patient_id, visit_time)
        WHERE status <> 'cancelled'
    `)

	return db
}
