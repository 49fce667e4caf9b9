package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/response"
)

// AnalyticsHandler exposes school-wide and per-class analytics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard godoc
// @Summary School-wide dashboard snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil)
}

// TopStudents godoc
// @Summary Ranked students by average score
// @Tags Analytics
// @Produce json
// @Param limit query int false "Number of students"
// @Success 200 {object} response.Envelope
// @Router /analytics/top-students [get]
func (h *AnalyticsHandler) TopStudents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	students, err := h.analytics.TopStudents(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// AtRisk godoc
// @Summary Students flagged for low grades or frequent absences
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/at-risk [get]
func (h *AnalyticsHandler) AtRisk(c *gin.Context) {
	students, err := h.analytics.AtRisk(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Class godoc
// @Summary Analytics for one class
// @Tags Analytics
// @Produce json
// @Param id path string true "Class id"
// @Success 200 {object} response.Envelope
// @Router /analytics/class/{id} [get]
func (h *AnalyticsHandler) Class(c *gin.Context) {
	analytics, err := h.analytics.ClassAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analytics, nil)
}

// Teacher godoc
// @Summary Analytics across all classes a teacher covers
// @Tags Analytics
// @Produce json
// @Param id path string true "Teacher id"
// @Success 200 {object} response.Envelope
// @Router /analytics/teacher/{id} [get]
func (h *AnalyticsHandler) Teacher(c *gin.Context) {
	analytics, err := h.analytics.TeacherAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analytics, nil)
}
