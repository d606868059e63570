package booking

import (
	"context"

	"github.com/medsched/outpatient-api/internal/audit"
	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes an appointment unconditionally, regardless of status.
// The record disappears from listings and from conflict evaluation.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	requestID string,
	appointmentID uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: requestID,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &appointmentID,
	})

	return nil
}
