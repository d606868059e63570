package dto

import "time"

type AppointmentListDTO struct {
	ID             uint      `json:"id"`
	VisitTime      time.Time `json:"visit_time"`
	Status         string    `json:"status"`
	Symptoms       string    `json:"symptoms"`
	DoctorName     string    `json:"doctor_name"`
	PatientName    string    `json:"patient_name"`
	DepartmentName string    `json:"department_name"`
}
