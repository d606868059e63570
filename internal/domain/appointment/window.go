package appointment

import (
	"time"

	"github.com/medsched/outpatient-api/internal/models"
)

// ConflictWindow is the minimum separation between two non-cancelled
// appointments sharing a doctor or a patient. Two visits closer than
// this conflict; exactly ConflictWindow apart is allowed.
const ConflictWindow = 15 * time.Minute

// WindowBounds returns the open interval (visit-window, visit+window)
// used both for the locked conflict query and the in-memory check.
func WindowBounds(visit time.Time) (time.Time, time.Time) {
	return visit.Add(-ConflictWindow), visit.Add(ConflictWindow)
}

// Conflicts reports whether two visit times fall inside the same
// protected window. The comparison is strict so that bookings at
// exactly ConflictWindow distance do not conflict.
func Conflicts(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < ConflictWindow
}

// FirstConflict scans a locked row set for a visit inside the window of
// the candidate time. Cancelled rows never conflict, even if the lock
// query was broadened to include them.
func FirstConflict(rows []models.Appointment, visit time.Time) *models.Appointment {
	for i := range rows {
		if Status(rows[i].Status) == StatusCancelled {
			continue
		}
		if Conflicts(rows[i].VisitTime, visit) {
			return &rows[i]
		}
	}
	return nil
}
