package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/medsched/outpatient-api/internal/audit"
	"github.com/medsched/outpatient-api/internal/clock"
	"github.com/medsched/outpatient-api/internal/config"
	dbpkg "github.com/medsched/outpatient-api/internal/db"
	"github.com/medsched/outpatient-api/internal/httperr"
	infraRepo "github.com/medsched/outpatient-api/internal/infra/repository"
	"github.com/medsched/outpatient-api/internal/models"
	"github.com/medsched/outpatient-api/internal/timezone"
	ucBooking "github.com/medsched/outpatient-api/internal/usecase/booking"
)

var departments = []string{
	"Internal Medicine",
	"Surgery",
	"Gynecology",
	"Pediatrics",
	"Orthopedics",
	"Ophthalmology",
	"Stomatology",
}

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Info().Msg("seed starting")

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	gofakeit.Seed(time.Now().UnixNano())

	ctx := context.Background()

	deptIDs, err := seedDepartments(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("seed departments")
	}

	doctors, err := seedDoctors(ctx, db, deptIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("seed doctors")
	}

	patients, err := seedPatients(ctx, db, 20)
	if err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}

	if err := seedAppointments(ctx, db, cfg, doctors, patients); err != nil {
		log.Fatal().Err(err).Msg("seed appointments")
	}

	log.Info().Msg("seed complete")
}

func seedDepartments(ctx context.Context, db *gorm.DB) (map[string]uint, error) {
	ids := make(map[string]uint, len(departments))

	for _, name := range departments {
		var dept models.Department
		err := db.WithContext(ctx).Where("name = ?", name).First(&dept).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dept = models.Department{Name: name}
			if err := db.WithContext(ctx).Create(&dept).Error; err != nil {
				return nil, err
			}
			log.Info().Str("department", name).Msg("created")
		} else if err != nil {
			return nil, err
		}
		ids[name] = dept.ID
	}

	return ids, nil
}

func seedDoctors(ctx context.Context, db *gorm.DB, deptIDs map[string]uint) ([]models.Doctor, error) {
	specializations := map[string]string{
		"Internal Medicine": "General Internal Medicine",
		"Surgery":           "General Surgery",
		"Gynecology":        "Obstetrics and Gynecology",
		"Pediatrics":        "General Pediatrics",
		"Orthopedics":       "Orthopedic Surgery",
		"Ophthalmology":     "Ophthalmology",
		"Stomatology":       "Dentistry",
	}

	var doctors []models.Doctor

	for _, deptName := range departments {
		deptID := deptIDs[deptName]

		var count int64
		if err := db.WithContext(ctx).
			Model(&models.Doctor{}).
			Where("department_id = ?", deptID).
			Count(&count).Error; err != nil {
			return nil, err
		}

		for i := count; i < 2; i++ {
			doctor := models.Doctor{
				Name:           "Dr. " + gofakeit.Name(),
				Specialization: specializations[deptName],
				Contact:        gofakeit.Phone(),
				DepartmentID:   deptID,
			}
			if err := db.WithContext(ctx).Create(&doctor).Error; err != nil {
				return nil, err
			}
			log.Info().Str("doctor", doctor.Name).Str("department", deptName).Msg("created")
		}

		var deptDoctors []models.Doctor
		if err := db.WithContext(ctx).
			Where("department_id = ?", deptID).
			Find(&deptDoctors).Error; err != nil {
			return nil, err
		}
		doctors = append(doctors, deptDoctors...)
	}

	return doctors, nil
}

func seedPatients(ctx context.Context, db *gorm.DB, target int64) ([]models.Patient, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error; err != nil {
		return nil, err
	}

	for i := count; i < target; i++ {
		dob := gofakeit.DateRange(
			time.Now().AddDate(-90, 0, 0),
			time.Now().AddDate(-1, 0, 0),
		)
		patient := models.Patient{
			Name:        gofakeit.Name(),
			DateOfBirth: &dob,
			ContactInfo: gofakeit.Phone(),
			Address:     gofakeit.Address().Address,
		}
		if err := db.WithContext(ctx).Create(&patient).Error; err != nil {
			return nil, err
		}
	}

	var patients []models.Patient
	if err := db.WithContext(ctx).Find(&patients).Error; err != nil {
		return nil, err
	}

	log.Info().Int("patients", len(patients)).Msg("patients ready")
	return patients, nil
}

// seedAppointments books a handful of demo visits through the booking
// use case, so seeded data obeys the same conflict protocol as live
// traffic. Conflicts with existing seed data are expected and skipped.
func seedAppointments(
	ctx context.Context,
	db *gorm.DB,
	cfg *config.Config,
	doctors []models.Doctor,
	patients []models.Patient,
) error {

	if len(doctors) == 0 || len(patients) == 0 {
		return nil
	}

	repo := infraRepo.NewAppointmentGormRepository(db)
	clk := clock.System(timezone.Location(cfg.Timezone))
	dispatcher := audit.NewDispatcher(audit.New(db))
	bookUC := ucBooking.NewBookAppointment(repo, clk, dispatcher)

	now := clk.Now()

	for i := 0; i < 3 && i < len(patients); i++ {
		doctor := doctors[i%len(doctors)]
		visit := now.AddDate(0, 0, i+1).Add(9 * time.Hour)

		_, err := bookUC.Execute(ctx, ucBooking.BookAppointmentInput{
			DoctorID:  doctor.ID,
			PatientID: patients[i].ID,
			VisitTime: visit,
			Symptoms:  gofakeit.SentenceSimple(),
			RequestID: "seed",
		})
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			log.Info().Uint("doctor_id", doctor.ID).Time("visit", visit).Msg("slot taken, skipping")
			continue
		}
		if err != nil {
			return err
		}
	}

	log.Info().Msg("sample appointments booked")
	return nil
}
