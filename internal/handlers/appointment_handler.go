package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/httpresp"
	"github.com/medsched/outpatient-api/internal/middleware"
	"github.com/medsched/outpatient-api/internal/timezone"
	ucBooking "github.com/medsched/outpatient-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	tz string

	bookUC    *ucBooking.BookAppointment
	confirmUC *ucBooking.ConfirmVisit
	cancelUC  *ucBooking.CancelAppointment
	deleteUC  *ucBooking.DeleteAppointment
	listUC    *ucBooking.ListAppointments
}

func NewAppointmentHandler(
	tz string,
	bookUC *ucBooking.BookAppointment,
	confirmUC *ucBooking.ConfirmVisit,
	cancelUC *ucBooking.CancelAppointment,
	deleteUC *ucBooking.DeleteAppointment,
	listUC *ucBooking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		tz:        tz,
		bookUC:    bookUC,
		confirmUC: confirmUC,
		cancelUC:  cancelUC,
		deleteUC:  deleteUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID     uint   `json:"doctor_id" binding:"required"`
	PatientID    uint   `json:"patient_id" binding:"required"`
	DepartmentID uint   `json:"department_id"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Symptoms     string `json:"symptoms"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	visit, err := timezone.ParseVisitTime(h.tz, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucBooking.BookAppointmentInput{
		DoctorID:     req.DoctorID,
		PatientID:    req.PatientID,
		DepartmentID: req.DepartmentID,
		VisitTime:    visit,
		Symptoms:     req.Symptoms,
		RequestID:    middleware.GetRequestID(c),
	})
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_book_appointment", "Failed to book the appointment.")
		}
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var filter domain.ListFilter

	if v := c.Query("department_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_department_id", "Invalid department id.")
			return
		}
		filter.DepartmentID = uint(id)
	}

	if v := c.Query("from"); v != "" {
		from, err := timezone.ParseDate(h.tz, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_from_date", "Invalid from date.")
			return
		}
		filter.From = from
	}

	if v := c.Query("to"); v != "" {
		to, err := timezone.ParseDate(h.tz, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_to_date", "Invalid to date.")
			return
		}
		// Inclusive end date: widen to the start of the next day.
		filter.To = to.AddDate(0, 0, 1)
	}

	if v := c.Query("status"); v != "" {
		status := domain.Status(v)
		if !domain.IsValid(status) {
			httperr.BadRequest(c, "invalid_status_filter", "Unknown status value.")
			return
		}
		filter.Status = status
	}

	items, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}

	items, err := h.listUC.ByPatient(c.Request.Context(), patientID)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		}
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), middleware.GetRequestID(c), id)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_complete_appointment", "Failed to complete the appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), middleware.GetRequestID(c), id)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_cancel_appointment", "Failed to cancel the appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.GetRequestID(c), id); err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_delete_appointment", "Failed to delete the appointment.")
		}
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// HELPERS
// ======================================================

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
