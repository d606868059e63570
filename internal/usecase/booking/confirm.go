package booking

import (
	"context"

	"github.com/medsched/outpatient-api/internal/audit"
	"github.com/medsched/outpatient-api/internal/clock"
	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/models"
)

type ConfirmVisit struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewConfirmVisit(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *ConfirmVisit {
	return &ConfirmVisit{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

// Execute transitions a scheduled appointment to completed. No locking
// protocol here: confirming never creates a new conflict.
func (uc *ConfirmVisit) Execute(
	ctx context.Context,
	requestID string,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.ConfirmVisit(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: requestID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
