package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medsched/outpatient-api/internal/cache"
	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/httpresp"
	"github.com/medsched/outpatient-api/internal/models"
)

type DepartmentHandler struct {
	db    *gorm.DB
	cache *cache.MasterData
}

func NewDepartmentHandler(db *gorm.DB, cache *cache.MasterData) *DepartmentHandler {
	return &DepartmentHandler{db: db, cache: cache}
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid department payload.")
		return
	}

	dept := models.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&dept).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "department_exists", "A department with this name already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_department", "Failed to create the department.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.Created(c, dept)
}

func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.cache.Departments(c.Request.Context(), func(ctx context.Context) ([]models.Department, error) {
		var out []models.Department
		if err := h.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_departments", "Failed to list departments.")
		return
	}

	httpresp.List(c, departments)
}
