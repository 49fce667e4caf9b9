package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/response"
)

// ReportHandler exposes PDF and CSV report downloads.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ReportCard godoc
// @Summary Download a student's report card as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Student id"
// @Success 200 {file} binary
// @Router /reports/student/{id}/report-card [get]
func (h *ReportHandler) ReportCard(c *gin.Context) {
	studentID := c.Param("id")
	payload, err := h.reports.ReportCardPDF(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-card-%s.pdf", studentID))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// AttendanceCSV godoc
// @Summary Download attendance records for a date as CSV
// @Tags Reports
// @Produce text/csv
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /reports/attendance/{date} [get]
func (h *ReportHandler) AttendanceCSV(c *gin.Context) {
	date := c.Param("date")
	payload, err := h.reports.AttendanceCSV(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance-%s.csv", date))
	c.Data(http.StatusOK, "text/csv", payload)
}

// GradesCSV godoc
// @Summary Download a student's grades as CSV
// @Tags Reports
// @Produce text/csv
// @Param id path string true "Student id"
// @Success 200 {file} binary
// @Router /reports/student/{id}/grades [get]
func (h *ReportHandler) GradesCSV(c *gin.Context) {
	studentID := c.Param("id")
	payload, err := h.reports.GradesCSV(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=grades-%s.csv", studentID))
	c.Data(http.StatusOK, "text/csv", payload)
}
