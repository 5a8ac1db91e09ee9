package handler

import (
	"net/http"
	"strings"

	"hospital-records/internal/middleware"
	"hospital-records/internal/service"
	"hospital-records/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	recordsService *service.RecordsService
}

func NewDepartmentHandler(recordsService *service.RecordsService) *DepartmentHandler {
	return &DepartmentHandler{
		recordsService: recordsService,
	}
}

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100,excludesall=/"`
}

// ListDepartments returns every department with its patient and staff counts
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments := h.recordsService.ListDepartments()

	utils.SuccessResponse(c, gin.H{
		"departments": departments,
		"count":       len(departments),
	})
}

// GetDepartment returns a single department by name
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	department, err := h.recordsService.GetDepartment(c.Param("name"))
	if err != nil {
		writeRecordsError(c, err, "Failed to fetch department")
		return
	}

	utils.SuccessResponse(c, department)
}

// CreateDepartment adds a new department (admin only)
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	department, err := h.recordsService.AddDepartment(strings.TrimSpace(req.Name), middleware.UserID(c))
	if err != nil {
		writeRecordsError(c, err, "Failed to create department")
		return
	}

	utils.DataResponse(c, http.StatusCreated, gin.H{
		"message":    "Department added successfully",
		"department": department,
	})
}

// DeleteDepartment removes a department with all its patients and staff (admin only)
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	if err := h.recordsService.RemoveDepartment(c.Param("name"), middleware.UserID(c)); err != nil {
		writeRecordsError(c, err, "Failed to delete department")
		return
	}

	utils.MessageResponse(c, "Department removed")
}
