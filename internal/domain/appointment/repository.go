package appointment

import (
	"context"
	"time"

	"github.com/medsched/outpatient-api/internal/models"
)

// ListFilter narrows ListAppointments. Zero values mean "no filter".
type ListFilter struct {
	DepartmentID uint
	From         time.Time
	To           time.Time
	Status       Status
}

type Repository interface {
	// -------- Master data --------
	GetDepartmentByID(
		ctx context.Context,
		id uint,
	) (*models.Department, error)

	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	// -------- Transaction scope --------
	// Transact runs fn against a repository bound to a single
	// transaction. fn returning an error rolls the transaction back;
	// locks taken inside never outlive the call.
	Transact(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Locked schedule reads --------
	// Both acquire exclusive row locks (FOR UPDATE) on the
	// non-cancelled appointments inside the conflict window. Only
	// meaningful on a repository obtained through Transact.
	LockDoctorSchedule(
		ctx context.Context,
		doctorID uint,
		visit time.Time,
	) ([]models.Appointment, error)

	LockPatientSchedule(
		ctx context.Context,
		patientID uint,
		visit time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListAppointmentsByPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)
}
