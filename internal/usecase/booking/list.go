package booking

import (
	"context"

	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/dto"
	"github.com/medsched/outpatient-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func (uc *ListAppointments) ByPatient(
	ctx context.Context,
	patientID uint,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetPatientByID(ctx, patientID); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:             ap.ID,
			VisitTime:      ap.VisitTime,
			Status:         ap.Status,
			Symptoms:       ap.Symptoms,
			DoctorName:     ap.Doctor.Name,
			PatientName:    ap.Patient.Name,
			DepartmentName: ap.Department.Name,
		})
	}
	return out
}
