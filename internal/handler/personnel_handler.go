package handler

import (
	"net/http"
	"strconv"
	"strings"

	"hospital-records/internal/middleware"
	"hospital-records/internal/service"
	"hospital-records/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PersonnelHandler serves patients and staff, per department and hospital-wide.
type PersonnelHandler struct {
	recordsService *service.RecordsService
}

func NewPersonnelHandler(recordsService *service.RecordsService) *PersonnelHandler {
	return &PersonnelHandler{
		recordsService: recordsService,
	}
}

// Age and salary are pointers so that an explicit 0 passes "required".
type CreatePatientRequest struct {
	Name          string `json:"name" binding:"required,notblank,max=255"`
	Age           *int   `json:"age" binding:"required,gte=0,lte=120"`
	MedicalRecord string `json:"medical_record" binding:"required,notblank"`
}

type CreateStaffRequest struct {
	Name   string   `json:"name" binding:"required,notblank,max=255"`
	Age    *int     `json:"age" binding:"required,gte=18,lte=80"`
	Role   string   `json:"role" binding:"required,notblank,max=100"`
	Salary *float64 `json:"salary" binding:"required,gte=0,lte=1000000"`
}

// ListDepartmentPatients returns the patients of one department
func (h *PersonnelHandler) ListDepartmentPatients(c *gin.Context) {
	patients, err := h.recordsService.ListPatients(c.Param("name"))
	if err != nil {
		writeRecordsError(c, err, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// ListDepartmentStaff returns the staff of one department
func (h *PersonnelHandler) ListDepartmentStaff(c *gin.Context) {
	staff, err := h.recordsService.ListStaff(c.Param("name"))
	if err != nil {
		writeRecordsError(c, err, "Failed to fetch staff")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"staff": staff,
		"count": len(staff),
	})
}

// ListPatients returns patients across all departments
func (h *PersonnelHandler) ListPatients(c *gin.Context) {
	patients := h.recordsService.AllPatients()

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// ListStaff returns staff across all departments
func (h *PersonnelHandler) ListStaff(c *gin.Context) {
	staff := h.recordsService.AllStaff()

	utils.SuccessResponse(c, gin.H{
		"staff": staff,
		"count": len(staff),
	})
}

// GetPatient returns a single patient by id
func (h *PersonnelHandler) GetPatient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	patient, err := h.recordsService.FindPatient(id)
	if err != nil {
		writeRecordsError(c, err, "Failed to fetch patient")
		return
	}

	utils.SuccessResponse(c, patient)
}

// GetStaffMember returns a single staff member by id
func (h *PersonnelHandler) GetStaffMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	member, err := h.recordsService.FindStaff(id)
	if err != nil {
		writeRecordsError(c, err, "Failed to fetch staff member")
		return
	}

	utils.SuccessResponse(c, member)
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// CreatePatient admits a patient to a department (admin only)
func (h *PersonnelHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.recordsService.AddPatient(
		c.Param("name"),
		strings.TrimSpace(req.Name),
		*req.Age,
		strings.TrimSpace(req.MedicalRecord),
		middleware.UserID(c),
	)
	if err != nil {
		writeRecordsError(c, err, "Failed to add patient")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Patient added successfully",
		"patient": patient,
	})
}

// CreateStaff adds a staff member to a department (admin only)
func (h *PersonnelHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.recordsService.AddStaff(
		c.Param("name"),
		strings.TrimSpace(req.Name),
		*req.Age,
		strings.TrimSpace(req.Role),
		*req.Salary,
		middleware.UserID(c),
	)
	if err != nil {
		writeRecordsError(c, err, "Failed to add staff member")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Staff member added successfully",
		"staff":   member,
	})
}
