package appointment

import (
	"time"

	"github.com/medsched/outpatient-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ConfirmVisit marks a scheduled appointment as completed.
func ConfirmVisit(ap *models.Appointment, now time.Time) error {
	next, err := Next(Status(ap.Status), ActionConfirmVisit)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.CompletedAt = &now
	return nil
}

// Cancel is idempotent: cancelling a cancelled or completed appointment
// succeeds without changing the record.
func Cancel(ap *models.Appointment, now time.Time) error {
	next, err := Next(Status(ap.Status), ActionCancel)
	if err != nil {
		return err
	}

	if next == StatusCancelled && Status(ap.Status) != StatusCancelled {
		ap.CancelledAt = &now
	}
	ap.Status = string(next)
	return nil
}
