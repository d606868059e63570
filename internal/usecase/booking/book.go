package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medsched/outpatient-api/internal/audit"
	"github.com/medsched/outpatient-api/internal/clock"
	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	DoctorID  uint
	PatientID uint

	// DepartmentID is the department the caller booked under. Zero
	// means "implied by the doctor".
	DepartmentID uint

	VisitTime time.Time
	Symptoms  string

	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

// BookAppointment is the only write path that creates appointments.
// It serializes contending attempts per doctor and per patient with
// row locks held for the lifetime of a single transaction.
type BookAppointment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Pre-checks outside the transaction. Cheap rejection of
	//    structurally invalid input before touching any lock.
	// --------------------------------------------------
	if _, err := uc.validate(ctx, uc.repo, in); err != nil {
		return nil, err
	}

	var created *models.Appointment

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 2. Lock the schedules. Doctor rows first, patient rows
		//    second; the fixed order prevents lock-ordering
		//    deadlock between concurrent bookings that touch the
		//    same pair in opposite roles.
		// --------------------------------------------------
		doctorRows, err := tx.LockDoctorSchedule(ctx, in.DoctorID, in.VisitTime)
		if err != nil {
			return err
		}

		patientRows, err := tx.LockPatientSchedule(ctx, in.PatientID, in.VisitTime)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 3. Re-validate under lock. Time has passed since the
		//    pre-check and the doctor's department may have
		//    changed concurrently.
		// --------------------------------------------------
		doctor, err := uc.validate(ctx, tx, in)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Window conflict check against the locked rows only.
		// --------------------------------------------------
		if domain.FirstConflict(doctorRows, in.VisitTime) != nil ||
			domain.FirstConflict(patientRows, in.VisitTime) != nil {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		// --------------------------------------------------
		// 5. Insert. The partial unique indexes are the backstop
		//    if the locked check ever has an isolation gap.
		// --------------------------------------------------
		ap := &models.Appointment{
			DoctorID:     in.DoctorID,
			PatientID:    in.PatientID,
			DepartmentID: doctor.DepartmentID,
			VisitTime:    in.VisitTime,
			Status:       string(domain.InitialStatus()),
			Symptoms:     in.Symptoms,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return nil, uc.mapFailure(ctx, in, err)
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: in.RequestID,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &created.ID,
	})

	return created, nil
}

// ======================================================
// VALIDATION RULES
// ======================================================

// validate runs the ordered, short-circuiting rule checks. It is
// called twice: once before the transaction and once more after lock
// acquisition, closing the TOCTOU window between submission and
// commit.
func (uc *BookAppointment) validate(
	ctx context.Context,
	repo domain.Repository,
	in BookAppointmentInput,
) (*models.Doctor, error) {

	doctor, err := repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	if in.DepartmentID != 0 {
		if _, err := repo.GetDepartmentByID(ctx, in.DepartmentID); err != nil {
			return nil, err
		}
		if doctor.DepartmentID != in.DepartmentID {
			return nil, httperr.ErrBusiness(httperr.CodeDepartmentMismatch)
		}
	}

	if _, err := repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	if !in.VisitTime.After(uc.clock.Now()) {
		return nil, httperr.ErrBusiness(httperr.CodePastTimeNotAllowed)
	}

	return doctor, nil
}

// ======================================================
// FAILURE MAPPING
// ======================================================

// mapFailure turns every transaction error into a typed business
// error. Raw storage errors never reach the caller.
func (uc *BookAppointment) mapFailure(
	ctx context.Context,
	in BookAppointmentInput,
	err error,
) error {

	switch {
	case httperr.IsBusiness(err, httperr.CodeSlotConflict):
		uc.auditConflict(in, "locked_window_check")
		return err

	case httperr.BusinessCode(err) != "":
		return err

	case httperr.IsUniqueViolation(err):
		// Backstop layer fired: the constraint caught what the
		// locked check missed.
		uc.auditConflict(in, "unique_constraint")
		return httperr.ErrBusiness(httperr.CodeSlotConflict)

	case ctx.Err() != nil:
		// Caller abandoned the request; the transaction was rolled
		// back and every lock released on the way out.
		return ctx.Err()

	case httperr.IsReadOnly(err):
		log.Warn().
			Uint("doctor_id", in.DoctorID).
			Msg("booking rejected by a read-only replica")
		return httperr.ErrBusiness(httperr.CodeStorageUnavailable)

	default:
		log.Error().Err(err).
			Uint("doctor_id", in.DoctorID).
			Uint("patient_id", in.PatientID).
			Msg("booking transaction failed")
		return httperr.ErrBusiness(httperr.CodeStorageUnavailable)
	}
}

func (uc *BookAppointment) auditConflict(in BookAppointmentInput, layer string) {
	uc.audit.Dispatch(audit.Event{
		RequestID: in.RequestID,
		Action:    "appointment_conflict",
		Entity:    "appointment",
		Metadata: map[string]any{
			"doctor_id":  in.DoctorID,
			"patient_id": in.PatientID,
			"visit_time": in.VisitTime,
			"layer":      layer,
		},
	})
}
