package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/medsched/outpatient-api/internal/httperr"
)

// writeBusinessError translates a typed business failure into the HTTP
// response the caller renders. Returns false when err carries no
// business code and the caller must handle it itself.
func writeBusinessError(c *gin.Context, err error) bool {
	code := httperr.BusinessCode(err)
	if code == "" {
		return false
	}

	switch code {
	case httperr.CodeDepartmentMismatch:
		httperr.BadRequest(c, code, "Doctor does not belong to the selected department.")
	case httperr.CodePastTimeNotAllowed:
		httperr.BadRequest(c, code, "Visit time must be in the future.")
	case httperr.CodeSlotConflict:
		httperr.Conflict(c, code, "The requested time conflicts with an existing appointment. Please choose another time.")
	case httperr.CodeInvalidStatus:
		httperr.BadRequest(c, code, "The appointment cannot be changed in its current status.")
	case httperr.CodeDepartmentNotFound:
		httperr.NotFound(c, code, "Department not found.")
	case httperr.CodeDoctorNotFound:
		httperr.NotFound(c, code, "Doctor not found.")
	case httperr.CodePatientNotFound:
		httperr.NotFound(c, code, "Patient not found.")
	case httperr.CodeAppointmentNotFound:
		httperr.NotFound(c, code, "Appointment not found.")
	case httperr.CodeStorageUnavailable:
		httperr.Unavailable(c, code, "The appointment store cannot be written to right now.")
	default:
		httperr.Internal(c, code, "Unexpected error.")
	}

	return true
}
