package handler

import (
	"net/http"
	"strconv"

	"hospital-records/internal/service"
	"hospital-records/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the dashboard views: summary, activity feed and roster export.
type ReportHandler struct {
	recordsService *service.RecordsService
	exportService  *service.ExportService
}

func NewReportHandler(recordsService *service.RecordsService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{
		recordsService: recordsService,
		exportService:  exportService,
	}
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	utils.SuccessResponse(c, h.recordsService.Summary())
}

// GetActivity returns the most recent audit entries, newest first
func (h *ReportHandler) GetActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	activity, err := h.recordsService.RecentActivity(limit)
	if err != nil {
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"activity": activity,
		"count":    len(activity),
	})
}

// ExportRoster sends the roster workbook as an attachment
func (h *ReportHandler) ExportRoster(c *gin.Context) {
	data, err := h.exportService.Roster()
	if err != nil {
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to export roster")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="hospital_roster.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
