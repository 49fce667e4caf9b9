package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/gradescale"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/response"
)

// GradeHandler exposes grade recording and GPA endpoints.
type GradeHandler struct {
	grades    *service.GradeService
	analytics *service.AnalyticsService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(grades *service.GradeService, analytics *service.AnalyticsService) *GradeHandler {
	return &GradeHandler{grades: grades, analytics: analytics}
}

// Create godoc
// @Summary Record a grade for a student
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.CreateGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req dto.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.grades.AddGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.analytics != nil {
		h.analytics.InvalidateDashboard(c.Request.Context())
	}
	response.Created(c, grade)
}

// ListByStudent godoc
// @Summary List a student's grades with letters and points
// @Tags Grades
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /grades/student/{id} [get]
func (h *GradeHandler) ListByStudent(c *gin.Context) {
	grades, err := h.grades.ListGrades(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// SimpleGPA godoc
// @Summary Compute the unweighted GPA for a student
// @Tags Grades
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /grades/student/{id}/gpa [get]
func (h *GradeHandler) SimpleGPA(c *gin.Context) {
	result, err := h.grades.SimpleGPA(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// WeightedGPA godoc
// @Summary Compute the per-subject weighted GPA for a student
// @Tags Grades
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /grades/student/{id}/gpa/weighted [get]
func (h *GradeHandler) WeightedGPA(c *gin.Context) {
	result, err := h.grades.WeightedGPA(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Scale godoc
// @Summary Convert a numeric score to its letter grade and points
// @Tags Grades
// @Produce json
// @Param score path number true "Score (0-100)"
// @Success 200 {object} response.Envelope
// @Router /grades/scale/{score} [get]
func (h *GradeHandler) Scale(c *gin.Context) {
	score, err := strconv.ParseFloat(c.Param("score"), 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "score must be numeric"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"score":       score,
		"letterGrade": gradescale.ScoreToLetterGrade(score),
		"gradePoints": gradescale.ScoreToGradePoints(score),
	}, nil)
}

// Summary godoc
// @Summary Full academic summary with subject breakdown
// @Tags Grades
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /grades/student/{id}/summary [get]
func (h *GradeHandler) Summary(c *gin.Context) {
	summary, err := h.grades.AcademicSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
