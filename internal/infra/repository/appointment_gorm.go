package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Master data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDepartmentByID(
	ctx context.Context,
	id uint,
) (*models.Department, error) {

	var dept models.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeDepartmentNotFound)
		}
		return nil, err
	}
	return &dept, nil
}

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Department").
		First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeDoctorNotFound)
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
		}
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Transaction scope
// --------------------------------------------------

func (r *AppointmentGormRepository) Transact(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Locked schedule reads
// --------------------------------------------------

// lockOwner takes an exclusive hold on the doctor or patient row
// before the window is read. A range predicate alone cannot lock rows
// that do not exist yet, so two bookings into an empty window could
// otherwise both pass the check; the owner row is the serialization
// point for the whole schedule. The window rows themselves stay
// unlocked: every writer of conflicting rows contends on the same
// owner lock, and row locks on appointments shared between a doctor
// window and a patient window could deadlock two bookings.
func (r *AppointmentGormRepository) lockOwner(
	ctx context.Context,
	owner any,
	id uint,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(owner, id).Error
}

func (r *AppointmentGormRepository) lockedWindow(
	ctx context.Context,
	column string,
	ownerID uint,
	visit time.Time,
) ([]models.Appointment, error) {

	lo, hi := domain.WindowBounds(visit)

	var rows []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			column+" = ? AND status <> ? AND visit_time > ? AND visit_time < ?",
			ownerID, string(domain.StatusCancelled), lo, hi,
		).
		Order("visit_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *AppointmentGormRepository) LockDoctorSchedule(
	ctx context.Context,
	doctorID uint,
	visit time.Time,
) ([]models.Appointment, error) {

	if err := r.lockOwner(ctx, &models.Doctor{}, doctorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeDoctorNotFound)
		}
		return nil, err
	}
	return r.lockedWindow(ctx, "doctor_id", doctorID, visit)
}

func (r *AppointmentGormRepository) LockPatientSchedule(
	ctx context.Context,
	patientID uint,
	visit time.Time,
) ([]models.Appointment, error) {

	if err := r.lockOwner(ctx, &models.Patient{}, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
		}
		return nil, err
	}
	return r.lockedWindow(ctx, "patient_id", patientID, visit)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Preload("Department").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

// --------------------------------------------------
// Listing (read-only, no locks)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Preload("Department")

	if filter.DepartmentID != 0 {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if !filter.From.IsZero() {
		q = q.Where("visit_time >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("visit_time < ?", filter.To)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var aps []models.Appointment
	if err := q.Order("visit_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Department").
		Where("patient_id = ?", patientID).
		Order("visit_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
