package appointment

import "github.com/medsched/outpatient-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Action string

const (
	ActionConfirmVisit Action = "confirm_visit"
	ActionCancel       Action = "cancel"
)

// transitions encodes legality as from-state x action -> to-state.
// A missing entry means the action is illegal from that state.
var transitions = map[Status]map[Action]Status{
	StatusScheduled: {
		ActionConfirmVisit: StatusCompleted,
		ActionCancel:       StatusCancelled,
	},
	// Cancelling a completed or cancelled appointment is a no-op
	// success: the record keeps its status. A completed visit in
	// particular must not reopen its slot for rebooking.
	StatusCompleted: {
		ActionCancel: StatusCompleted,
	},
	StatusCancelled: {
		ActionCancel: StatusCancelled,
	},
}

// Next resolves a status transition or fails with invalid_status.
func Next(current Status, action Action) (Status, error) {
	if to, ok := transitions[current][action]; ok {
		return to, nil
	}
	return current, httperr.ErrBusiness(httperr.CodeInvalidStatus)
}

func InitialStatus() Status {
	return StatusScheduled
}

func IsValid(s Status) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
