package httperr

import "errors"

// Business error codes returned by the booking core. Handlers translate
// each code into an HTTP status and a user-facing message.
const (
	CodeDepartmentMismatch  = "department_mismatch"
	CodePastTimeNotAllowed  = "past_time_not_allowed"
	CodeSlotConflict        = "slot_conflict"
	CodeInvalidStatus       = "invalid_status"
	CodeDepartmentNotFound  = "department_not_found"
	CodeDoctorNotFound      = "doctor_not_found"
	CodePatientNotFound     = "patient_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeStorageUnavailable  = "storage_unavailable"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" when err
// is not one.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
