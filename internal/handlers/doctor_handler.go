package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medsched/outpatient-api/internal/cache"
	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/httpresp"
	"github.com/medsched/outpatient-api/internal/models"
)

type DoctorHandler struct {
	db    *gorm.DB
	cache *cache.MasterData
}

func NewDoctorHandler(db *gorm.DB, cache *cache.MasterData) *DoctorHandler {
	return &DoctorHandler{db: db, cache: cache}
}

type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
	Contact        string `json:"contact"`
	DepartmentID   uint   `json:"department_id" binding:"required"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor payload.")
		return
	}

	var dept models.Department
	if err := h.db.WithContext(c.Request.Context()).First(&dept, req.DepartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeDepartmentNotFound, "Department not found.")
			return
		}
		httperr.Internal(c, "failed_to_create_doctor", "Failed to create the doctor.")
		return
	}

	doctor := models.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Contact:        req.Contact,
		DepartmentID:   dept.ID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_doctor", "Failed to create the doctor.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.Created(c, doctor)
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.cache.Doctors(c.Request.Context(), func(ctx context.Context) ([]models.Doctor, error) {
		var out []models.Doctor
		if err := h.db.WithContext(ctx).
			Preload("Department").
			Order("name ASC").
			Find(&out).Error; err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Failed to list doctors.")
		return
	}

	httpresp.List(c, doctors)
}
