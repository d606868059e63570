package booking

import (
	"context"

	"github.com/medsched/outpatient-api/internal/audit"
	"github.com/medsched/outpatient-api/internal/clock"
	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

// Execute cancels an appointment. Cancellation is idempotent and only
// shrinks the conflict-relevant row set, so it needs no locking.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	requestID string,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	before := ap.Status

	if err := domain.Cancel(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	// Completed and already-cancelled records come back unchanged;
	// nothing to persist or audit then.
	if ap.Status != before {
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			RequestID: requestID,
			Action:    "appointment_cancelled",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}
