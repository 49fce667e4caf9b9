package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/response"
)

// AttendanceHandler exposes attendance tracking endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Mark godoc
// @Summary Mark attendance for one student
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	record, err := h.attendance.Mark(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Bulk godoc
// @Summary Mark attendance for a whole class in one call
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.BulkAttendanceRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Router /attendance/bulk [post]
func (h *AttendanceHandler) Bulk(c *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.attendance.MarkBatch(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ByDate godoc
// @Summary List attendance records for a date
// @Tags Attendance
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance/date/{date} [get]
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	records, err := h.attendance.ListByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// ByStudent godoc
// @Summary List a student's attendance history
// @Tags Attendance
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /attendance/student/{id} [get]
func (h *AttendanceHandler) ByStudent(c *gin.Context) {
	records, err := h.attendance.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// StudentStats godoc
// @Summary Attendance counts and percentage for a student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /attendance/student/{id}/stats [get]
func (h *AttendanceHandler) StudentStats(c *gin.Context) {
	stats, err := h.attendance.StudentStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ClassStats godoc
// @Summary Attendance counts and rate for a class
// @Tags Attendance
// @Produce json
// @Param id path string true "Class id"
// @Success 200 {object} response.Envelope
// @Router /attendance/class/{id}/stats [get]
func (h *AttendanceHandler) ClassStats(c *gin.Context) {
	stats, err := h.attendance.ClassStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Trends godoc
// @Summary Daily attendance rates over the trend window
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/trends [get]
func (h *AttendanceHandler) Trends(c *gin.Context) {
	trends, err := h.attendance.Trends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trends, nil)
}

// NotifyAbsences godoc
// @Summary Notify parents of students marked absent on a date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.NotifyAbsencesRequest true "Date payload"
// @Success 200 {object} response.Envelope
// @Router /attendance/notify-absences [post]
func (h *AttendanceHandler) NotifyAbsences(c *gin.Context) {
	var req dto.NotifyAbsencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.attendance.NotifyAbsences(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
