package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/httpresp"
	"github.com/medsched/outpatient-api/internal/models"
	"github.com/medsched/outpatient-api/internal/validators"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient payload.")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httperr.BadRequest(c, "invalid_name", "Patient name cannot be empty.")
		return
	}

	if strings.Contains(req.ContactInfo, "@") && !validators.IsEmailDomainValid(req.ContactInfo) {
		httperr.BadRequest(c, "invalid_contact_email", "Contact email domain does not resolve.")
		return
	}

	patient := models.Patient{
		Name:        strings.TrimSpace(req.Name),
		ContactInfo: req.ContactInfo,
		Address:     req.Address,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_of_birth", "Invalid date of birth.")
			return
		}
		patient.DateOfBirth = &dob
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Failed to create the patient.")
		return
	}

	httpresp.Created(c, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	var patients []models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Failed to list patients.")
		return
	}

	httpresp.List(c, patients)
}
